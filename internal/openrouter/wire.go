package openrouter

import "github.com/shamanicarts/ortr/internal/models"

// req is the chat completions request body. Generation parameters are
// left at remote defaults, and streaming stays off: the launcher
// renders one answer row, not a token feed.
type req struct {
	Model    string           `json:"model"`
	Messages []models.Message `json:"messages"`
}

type chatCompletion struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
	Usage   usage    `json:"usage"`
}

type choice struct {
	Index        int            `json:"index"`
	Message      models.Message `json:"message"`
	FinishReason string         `json:"finish_reason"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// modelList is the catalog response envelope
type modelList struct {
	Data []models.ModelDescriptor `json:"data"`
}
