// Package openrouter holds the remote clients: one for the chat
// completions endpoint and one for the model catalog. Both are
// stateless per call apart from the in-memory catalog cache, take
// their deadline from the context with a default fallback, and never
// retry on their own.
package openrouter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/shamanicarts/ortr/internal/models"
)

const (
	ChatCompletionsURL = "https://openrouter.ai/api/v1/chat/completions"
	CatalogURL         = "https://openrouter.ai/api/v1/models"

	// DefaultTimeout bounds requests whose context carries no deadline
	DefaultTimeout = 30 * time.Second

	refererHeader = "github.com/shamanicarts/ortr"
	titleHeader   = "ortr"
)

// Client talks to the OpenRouter API. The zero value is not usable,
// use New.
type Client struct {
	// ChatURL and ModelsURL exist so tests can point the client at a
	// httptest server
	ChatURL   string
	ModelsURL string
	Timeout   time.Duration

	client *http.Client
	debug  bool

	catalogMu sync.Mutex
	catalog   []models.ModelDescriptor
}

func New() *Client {
	return &Client{
		ChatURL:   ChatCompletionsURL,
		ModelsURL: CatalogURL,
		Timeout:   DefaultTimeout,
		client:    &http.Client{},
		debug:     misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("ORTR_DEBUG")),
	}
}

// withDeadline returns ctx bounded by c.Timeout unless the caller
// already set a deadline
func (c *Client) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.Timeout)
}

func (c *Client) setHeaders(r *http.Request, key models.APIKey) {
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Authorization", fmt.Sprintf("Bearer %v", key.Reveal()))
	r.Header.Set("HTTP-Referer", refererHeader)
	r.Header.Set("X-Title", titleHeader)
}

// do executes the request and maps transport and status failures onto
// the error taxonomy. On success the response body is returned, read
// to completion and closed.
func (c *Client) do(r *http.Request) ([]byte, error) {
	res, err := c.client.Do(r)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return nil, fmt.Errorf("%w: %v", models.ErrTimeout, err)
		}
		return nil, &models.ErrNetwork{Err: err}
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &models.ErrNetwork{Err: err}
	}
	if err := statusToErr(res.StatusCode, body); err != nil {
		return nil, err
	}
	return body, nil
}

func statusToErr(statusCode int, body []byte) error {
	switch {
	case statusCode == http.StatusOK:
		return nil
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return fmt.Errorf("%w, status: %v", models.ErrAuth, statusCode)
	case statusCode == http.StatusTooManyRequests:
		return models.ErrRateLimited
	case statusCode >= 500:
		return fmt.Errorf("%w, status: %v", models.ErrServiceUnavailable, statusCode)
	default:
		return models.NewUnexpectedStatusError(statusCode, string(body))
	}
}
