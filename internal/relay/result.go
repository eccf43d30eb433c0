package relay

import (
	"errors"
	"fmt"

	"github.com/shamanicarts/ortr/internal/config"
	"github.com/shamanicarts/ortr/internal/models"
	"github.com/shamanicarts/ortr/internal/utils"
)

// answerPreviewRunes bounds the title of an answer row, launcher rows
// are a single line
const answerPreviewRunes = 100

func welcomeItems(conf config.Configuration) []models.ResultItem {
	kw := conf.ActionKeyword
	items := []models.ResultItem{{
		Title:    "OpenRouter AI",
		Subtitle: "Type a question to ask the AI",
	}}
	if !conf.APIKey.IsSet() {
		items = append(items, models.ResultItem{
			Title:    "Set API Key",
			Subtitle: "Use '" + kw + " setkey YOUR_API_KEY' to set your OpenRouter API key",
		})
	}
	items = append(items,
		models.ResultItem{
			Title:    "List Models",
			Subtitle: "Type '" + kw + " models' to see available models",
		},
		models.ResultItem{
			Title:    "Set Model",
			Subtitle: "Use '" + kw + " setmodel MODEL_ID' to set your preferred model",
		},
	)
	return items
}

func usageItems(usage, explanation string, conf config.Configuration) []models.ResultItem {
	return []models.ResultItem{{
		Title:    "Usage: " + conf.ActionKeyword + " " + usage,
		Subtitle: explanation,
	}}
}

func answerItems(res models.QueryResult) []models.ResultItem {
	return []models.ResultItem{
		{
			Title:    utils.Truncate(res.AnswerText, answerPreviewRunes),
			Subtitle: "Answer from " + res.ModelUsed + ", enter copies it to the clipboard",
			Action:   models.Action{Kind: models.ActionCopyToClipboard, Text: res.AnswerText},
		},
		{
			Title:    "Open in editor",
			Subtitle: "View the full answer in your text editor",
			Action:   models.Action{Kind: models.ActionOpenInEditor, Text: res.AnswerText},
		},
	}
}

func modelSubtitle(d models.ModelDescriptor, conf config.Configuration) string {
	s := d.DisplayName
	if s == "" {
		s = d.ID
	}
	if d.ContextLength > 0 {
		s = fmt.Sprintf("%v, %v context", s, d.ContextLength)
	}
	if d.Pricing != nil {
		s = fmt.Sprintf("%v, $%v/$%v per token", s, d.Pricing.Prompt, d.Pricing.Completion)
	}
	return s + " (enter copies id for '" + conf.ActionKeyword + " setmodel')"
}

// errorItem converts any error reaching the relay into one
// plain-language row with a noop action
func errorItem(err error, conf config.Configuration) models.ResultItem {
	kw := conf.ActionKeyword
	var statusErr *models.ErrUnexpectedStatus
	var persistErr *models.ErrConfigPersistence
	var netErr *models.ErrNetwork
	switch {
	case errors.Is(err, models.ErrMissingAPIKey):
		return models.ResultItem{
			Title:    "API key not set",
			Subtitle: "Use '" + kw + " setkey YOUR_API_KEY' to set your OpenRouter API key",
		}
	case errors.Is(err, models.ErrEmptyPrompt):
		return models.ResultItem{
			Title:    "Nothing to ask",
			Subtitle: "Type a question after the action keyword",
		}
	case errors.Is(err, models.ErrEmptyResponse):
		return models.ResultItem{
			Title:    "No answer returned",
			Subtitle: "The model sent back an empty response, re-submit or switch model",
		}
	case errors.Is(err, models.ErrAuth):
		return models.ResultItem{
			Title:    "API key rejected",
			Subtitle: "OpenRouter did not accept the key, double check it with '" + kw + " setkey'",
		}
	case errors.Is(err, models.ErrRateLimited):
		return models.ResultItem{
			Title:    "Rate limited",
			Subtitle: "OpenRouter is rate limiting this key, wait a moment and re-submit",
		}
	case errors.Is(err, models.ErrServiceUnavailable):
		return models.ResultItem{
			Title:    "OpenRouter is unavailable",
			Subtitle: "The service reported an internal problem, re-submit in a little while",
		}
	case errors.Is(err, models.ErrTimeout):
		return models.ResultItem{
			Title:    "Request timed out",
			Subtitle: "The request hit its deadline, re-submit to try again",
		}
	case errors.As(err, &netErr):
		return models.ResultItem{
			Title:    "Network problem",
			Subtitle: utils.Truncate(netErr.Error(), answerPreviewRunes),
		}
	case errors.As(err, &persistErr):
		return models.ResultItem{
			Title:    "Failed to save configuration",
			Subtitle: utils.Truncate(persistErr.Error(), answerPreviewRunes),
		}
	case errors.As(err, &statusErr):
		return models.ResultItem{
			Title:    fmt.Sprintf("Unexpected response, status: %v", statusErr.StatusCode),
			Subtitle: utils.Truncate(statusErr.Body, answerPreviewRunes),
		}
	default:
		return models.ResultItem{
			Title:    "Something went wrong",
			Subtitle: utils.Truncate(err.Error(), answerPreviewRunes),
		}
	}
}
