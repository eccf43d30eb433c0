// Package relay is the dispatch state machine: one raw launcher input
// in, one ordered list of selectable result rows out. Every error
// kind becomes exactly one renderable row, nothing escapes as a fault
// to the host.
package relay

import (
	"context"

	"github.com/shamanicarts/ortr/internal/command"
	"github.com/shamanicarts/ortr/internal/config"
	"github.com/shamanicarts/ortr/internal/models"
)

// CatalogClient lists the remote model catalog. CachedModels returns
// nil until a fetch has succeeded.
type CatalogClient interface {
	ListModels(ctx context.Context, key models.APIKey) ([]models.ModelDescriptor, error)
	CachedModels() []models.ModelDescriptor
}

// Querier asks the completion endpoint a single question
type Querier interface {
	Ask(ctx context.Context, prompt, model string, key models.APIKey) (models.QueryResult, error)
}

type Relay struct {
	store   config.Store
	catalog CatalogClient
	querier Querier
}

func New(store config.Store, catalog CatalogClient, querier Querier) *Relay {
	return &Relay{
		store:   store,
		catalog: catalog,
		querier: querier,
	}
}

// HandleQuery dispatches one invocation. The returned slice is never
// empty and its first item is the default Enter action. May be called
// concurrently, per-call state only.
func (r *Relay) HandleQuery(ctx context.Context, raw string) []models.ResultItem {
	conf, err := r.store.Load()
	if err != nil {
		// Continue on the defaults the store fell back to. The
		// persistence problem resurfaces with an explanatory row on
		// the first write attempt.
		conf.ActionKeyword = orDefault(conf.ActionKeyword, config.Default.ActionKeyword)
		conf.DefaultModel = orDefault(conf.DefaultModel, config.Default.DefaultModel)
	}
	cmd := command.Parse(raw, conf.Delimiter)

	switch cmd.Kind {
	case models.CommandSetKey:
		return r.handleSetKey(cmd.Arg, conf)
	case models.CommandListModels:
		return r.handleListModels(ctx, conf)
	case models.CommandSetModel:
		return r.handleSetModel(cmd.Arg, conf)
	case models.CommandAsk:
		return r.handleAsk(ctx, cmd.Arg, conf)
	default:
		return r.handleEmpty(cmd, conf)
	}
}

func orDefault(v, dflt string) string {
	if v == "" {
		return dflt
	}
	return v
}

func (r *Relay) handleSetKey(arg string, conf config.Configuration) []models.ResultItem {
	if arg == "" {
		return usageItems("setkey YOUR_API_KEY", "Saves your OpenRouter API key", conf)
	}
	key := models.APIKey(arg)
	if err := r.store.SetAPIKey(key); err != nil {
		return []models.ResultItem{errorItem(err, conf)}
	}
	return []models.ResultItem{{
		Title:    "API key saved",
		Subtitle: "Stored as " + key.Masked(),
	}}
}

func (r *Relay) handleListModels(ctx context.Context, conf config.Configuration) []models.ResultItem {
	descriptors, err := r.catalog.ListModels(ctx, conf.APIKey)
	if err != nil {
		return []models.ResultItem{errorItem(err, conf)}
	}
	if len(descriptors) == 0 {
		return []models.ResultItem{{
			Title:    "No models found",
			Subtitle: "The catalog came back empty, try again later",
		}}
	}
	items := make([]models.ResultItem, 0, len(descriptors))
	for _, d := range descriptors {
		items = append(items, models.ResultItem{
			Title:    d.ID,
			Subtitle: modelSubtitle(d, conf),
			Action:   models.Action{Kind: models.ActionCopyToClipboard, Text: d.ID},
		})
	}
	return items
}

func (r *Relay) handleSetModel(arg string, conf config.Configuration) []models.ResultItem {
	if arg == "" {
		return usageItems("setmodel MODEL_ID", "Sets the model used for your queries", conf)
	}
	// Only validate against the catalog once it has been fetched.
	// Requiring a network round-trip here would make setmodel flaky
	// offline for no gain.
	if cached := r.catalog.CachedModels(); cached != nil && !containsModel(cached, arg) {
		return []models.ResultItem{{
			Title:    "Unknown model: " + arg,
			Subtitle: "Not in the catalog, run '" + conf.ActionKeyword + " models' to browse valid ids",
		}}
	}
	if err := r.store.SetModel(arg); err != nil {
		return []models.ResultItem{errorItem(err, conf)}
	}
	return []models.ResultItem{{
		Title:    "Model set to " + arg,
		Subtitle: "This model will be used for your queries",
	}}
}

func (r *Relay) handleAsk(ctx context.Context, prompt string, conf config.Configuration) []models.ResultItem {
	if !conf.APIKey.IsSet() {
		return []models.ResultItem{errorItem(models.ErrMissingAPIKey, conf)}
	}
	res, err := r.querier.Ask(ctx, prompt, conf.DefaultModel, conf.APIKey)
	if err != nil {
		return []models.ResultItem{errorItem(err, conf)}
	}
	return answerItems(res)
}

func (r *Relay) handleEmpty(cmd models.Command, conf config.Configuration) []models.ResultItem {
	if cmd.Hint != "" {
		return []models.ResultItem{{
			Title:    "Keep typing your question",
			Subtitle: cmd.Hint,
		}}
	}
	return welcomeItems(conf)
}

func containsModel(descriptors []models.ModelDescriptor, id string) bool {
	for _, d := range descriptors {
		if d.ID == id {
			return true
		}
	}
	return false
}
