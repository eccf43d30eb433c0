package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/shamanicarts/ortr/internal/models"
)

// Ask sends one single-message completion request and returns the
// first choice's content. The prompt must be non-empty after trimming
// and a key must be present, both are checked before any network
// traffic happens.
func (c *Client) Ask(ctx context.Context, prompt, model string, key models.APIKey) (models.QueryResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return models.QueryResult{}, models.ErrEmptyPrompt
	}
	if !key.IsSet() {
		return models.QueryResult{}, models.ErrMissingAPIKey
	}
	ctx, cancel := c.withDeadline(ctx)
	defer cancel()

	reqData := req{
		Model:    model,
		Messages: []models.Message{{Role: "user", Content: prompt}},
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("openrouter request: %v\n", debug.IndentedJsonFmt(reqData)))
	}
	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return models.QueryResult{}, fmt.Errorf("failed to encode JSON: %w", err)
	}
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ChatURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return models.QueryResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(r, key)

	body, err := c.do(r)
	if err != nil {
		return models.QueryResult{}, err
	}

	var completion chatCompletion
	if err := json.Unmarshal(body, &completion); err != nil {
		return models.QueryResult{}, fmt.Errorf("failed to unmarshal completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return models.QueryResult{}, models.ErrEmptyResponse
	}
	modelUsed := completion.Model
	if modelUsed == "" {
		modelUsed = model
	}
	return models.QueryResult{
		AnswerText: completion.Choices[0].Message.Content,
		ModelUsed:  modelUsed,
	}, nil
}
