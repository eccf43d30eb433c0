package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shamanicarts/ortr/internal/models"
)

// ListModels fetches the remote model catalog. The first successful
// fetch is cached for the process lifetime, catalogs change rarely
// enough that restart-only invalidation is fine. Fails fast without a
// network call when no key is configured.
func (c *Client) ListModels(ctx context.Context, key models.APIKey) ([]models.ModelDescriptor, error) {
	if cached := c.CachedModels(); cached != nil {
		return cached, nil
	}
	if !key.IsSet() {
		return nil, models.ErrMissingAPIKey
	}
	ctx, cancel := c.withDeadline(ctx)
	defer cancel()

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ModelsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(r, key)

	body, err := c.do(r)
	if err != nil {
		return nil, err
	}

	var list modelList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	if list.Data == nil {
		list.Data = []models.ModelDescriptor{}
	}

	c.catalogMu.Lock()
	c.catalog = list.Data
	c.catalogMu.Unlock()
	return c.CachedModels(), nil
}

// CachedModels returns a copy of the in-memory catalog, or nil when
// no fetch has succeeded yet
func (c *Client) CachedModels() []models.ModelDescriptor {
	c.catalogMu.Lock()
	defer c.catalogMu.Unlock()
	if c.catalog == nil {
		return nil
	}
	cpy := make([]models.ModelDescriptor, len(c.catalog))
	copy(cpy, c.catalog)
	return cpy
}
