package relay

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/shamanicarts/ortr/internal/config"
	"github.com/shamanicarts/ortr/internal/models"
)

// memStore is an in-memory config.Store for tests
type memStore struct {
	conf    config.Configuration
	loadErr error
	saveErr error
}

func (m *memStore) Load() (config.Configuration, error) {
	return m.conf, m.loadErr
}

func (m *memStore) Save(conf config.Configuration) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.conf = conf
	return nil
}

func (m *memStore) SetAPIKey(key models.APIKey) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.conf.APIKey = key
	return nil
}

func (m *memStore) SetModel(id string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.conf.DefaultModel = id
	return nil
}

type stubCatalog struct {
	descriptors []models.ModelDescriptor
	err         error
	cached      []models.ModelDescriptor
	calls       int
}

func (s *stubCatalog) ListModels(ctx context.Context, key models.APIKey) ([]models.ModelDescriptor, error) {
	s.calls++
	return s.descriptors, s.err
}

func (s *stubCatalog) CachedModels() []models.ModelDescriptor {
	return s.cached
}

type stubQuerier struct {
	res     models.QueryResult
	err     error
	calls   int
	gotKey  models.APIKey
	gotArgs []string
}

func (s *stubQuerier) Ask(ctx context.Context, prompt, model string, key models.APIKey) (models.QueryResult, error) {
	s.calls++
	s.gotKey = key
	s.gotArgs = []string{prompt, model}
	return s.res, s.err
}

func newTestRelay(conf config.Configuration) (*Relay, *memStore, *stubCatalog, *stubQuerier) {
	store := &memStore{conf: conf}
	catalog := &stubCatalog{}
	querier := &stubQuerier{}
	return New(store, catalog, querier), store, catalog, querier
}

func confWithKey() config.Configuration {
	conf := config.Default
	conf.APIKey = "sk-or-v1-testkey-abcdef"
	conf.DefaultModel = "openai/gpt-4o"
	return conf
}

func TestHandleQuery_NeverEmpty(t *testing.T) {
	inputs := []string{
		"", "   ", "setkey", "setkey abc", "models", "setmodel",
		"setmodel x", "why is the sky blue", "models of cars",
	}
	confs := []config.Configuration{
		config.Default,
		confWithKey(),
		{},
	}
	for _, conf := range confs {
		r, _, catalog, querier := newTestRelay(conf)
		catalog.err = models.ErrServiceUnavailable
		querier.err = models.ErrServiceUnavailable
		for _, in := range inputs {
			got := r.HandleQuery(context.Background(), in)
			if len(got) == 0 {
				t.Fatalf("empty result for input %q with conf %+v", in, conf)
			}
		}
	}
}

func TestHandleQuery_WelcomeListsSubCommands(t *testing.T) {
	r, _, _, _ := newTestRelay(config.Default)
	got := r.HandleQuery(context.Background(), "")
	if got[0].Title != "OpenRouter AI" {
		t.Fatalf("expected welcome row first, got: %+v", got[0])
	}
	// No key configured: a setkey hint must be among the rows
	joined := ""
	for _, item := range got {
		if item.Action.Kind != models.ActionNoop {
			t.Fatalf("welcome rows should be noop, got: %+v", item)
		}
		joined += item.Title + " " + item.Subtitle + "\n"
	}
	for _, want := range []string{"setkey", "models", "setmodel"} {
		testboil.AssertStringContains(t, joined, want)
	}
}

func TestHandleQuery_WelcomeOmitsSetKeyHintWhenConfigured(t *testing.T) {
	r, _, _, _ := newTestRelay(confWithKey())
	got := r.HandleQuery(context.Background(), "")
	for _, item := range got {
		if item.Title == "Set API Key" {
			t.Fatalf("did not expect setkey row with key configured: %+v", got)
		}
	}
}

func TestHandleQuery_DelimiterHint(t *testing.T) {
	conf := confWithKey()
	conf.Delimiter = "??"
	r, _, _, querier := newTestRelay(conf)
	got := r.HandleQuery(context.Background(), "what is go")
	if len(got) != 1 {
		t.Fatalf("expected a single hint row, got: %+v", got)
	}
	testboil.AssertStringContains(t, got[0].Subtitle, "??")
	if querier.calls != 0 {
		t.Fatalf("expected no query while waiting for delimiter, got: %v", querier.calls)
	}
}

func TestHandleQuery_SetKeyEmptyArgDoesNotMutate(t *testing.T) {
	r, store, _, _ := newTestRelay(config.Default)
	got := r.HandleQuery(context.Background(), "setkey")
	if len(got) != 1 {
		t.Fatalf("expected single usage row, got: %+v", got)
	}
	testboil.AssertStringContains(t, got[0].Title, "Usage")
	if store.conf.APIKey.IsSet() {
		t.Fatalf("configuration mutated by empty setkey: %+v", store.conf)
	}
}

func TestHandleQuery_SetKeyPersistsAndMasks(t *testing.T) {
	r, store, _, querier := newTestRelay(config.Default)
	got := r.HandleQuery(context.Background(), "setkey ABC123XYZ9")
	if len(got) != 1 {
		t.Fatalf("expected single confirmation row, got: %+v", got)
	}
	if store.conf.APIKey.Reveal() != "ABC123XYZ9" {
		t.Fatalf("expected key to persist, got: %q", store.conf.APIKey.Reveal())
	}
	for _, item := range got {
		if strings.Contains(item.Title, "ABC123XYZ9") || strings.Contains(item.Subtitle, "ABC123XYZ9") {
			t.Fatalf("raw key echoed back: %+v", item)
		}
	}
	// The fresh key is what a subsequent ask authenticates with
	querier.res = models.QueryResult{AnswerText: "ok", ModelUsed: "m"}
	r.HandleQuery(context.Background(), "hello there")
	if querier.gotKey.Reveal() != "ABC123XYZ9" {
		t.Fatalf("expected ask to use fresh key, got: %v", querier.gotKey)
	}
}

func TestHandleQuery_SetKeyPersistenceFailure(t *testing.T) {
	store := &memStore{conf: config.Default, saveErr: &models.ErrConfigPersistence{Err: context.DeadlineExceeded}}
	r := New(store, &stubCatalog{}, &stubQuerier{})
	got := r.HandleQuery(context.Background(), "setkey somekey")
	if len(got) != 1 {
		t.Fatalf("expected single error row, got: %+v", got)
	}
	testboil.AssertStringContains(t, got[0].Title, "Failed to save configuration")
}

func TestHandleQuery_SetModelEmptyArgDoesNotMutate(t *testing.T) {
	r, store, _, _ := newTestRelay(config.Default)
	got := r.HandleQuery(context.Background(), "setmodel   ")
	testboil.AssertStringContains(t, got[0].Title, "Usage")
	if store.conf.DefaultModel != config.Default.DefaultModel {
		t.Fatalf("configuration mutated by empty setmodel: %+v", store.conf)
	}
}

func TestHandleQuery_SetModelPersists(t *testing.T) {
	r, store, _, _ := newTestRelay(confWithKey())
	got := r.HandleQuery(context.Background(), "setmodel openai/gpt-4o")
	if len(got) != 1 {
		t.Fatalf("expected single confirmation row, got: %+v", got)
	}
	testboil.AssertStringContains(t, got[0].Title, "Model set to openai/gpt-4o")
	if got[0].Action.Kind != models.ActionNoop {
		t.Fatalf("expected noop action, got: %+v", got[0].Action)
	}
	testboil.FailTestIfDiff(t, store.conf.DefaultModel, "openai/gpt-4o")
}

func TestHandleQuery_SetModelRejectsUnknownWhenCatalogCached(t *testing.T) {
	r, store, catalog, _ := newTestRelay(confWithKey())
	catalog.cached = []models.ModelDescriptor{{ID: "a/b"}}
	got := r.HandleQuery(context.Background(), "setmodel not/real")
	testboil.AssertStringContains(t, got[0].Title, "Unknown model")
	if store.conf.DefaultModel == "not/real" {
		t.Fatalf("unknown model persisted: %+v", store.conf)
	}

	// A known id still saves
	got = r.HandleQuery(context.Background(), "setmodel a/b")
	testboil.AssertStringContains(t, got[0].Title, "Model set to a/b")
	testboil.FailTestIfDiff(t, store.conf.DefaultModel, "a/b")
}

func TestHandleQuery_ModelsOneRowPerDescriptor(t *testing.T) {
	r, _, catalog, _ := newTestRelay(confWithKey())
	catalog.descriptors = []models.ModelDescriptor{
		{ID: "a/b", DisplayName: "A B"},
	}
	got := r.HandleQuery(context.Background(), "models")
	if len(got) != 1 {
		t.Fatalf("expected one row per descriptor, got: %+v", got)
	}
	testboil.FailTestIfDiff(t, got[0].Title, "a/b")
	testboil.AssertStringContains(t, got[0].Subtitle, "A B")
	if got[0].Action.Kind != models.ActionCopyToClipboard || got[0].Action.Text != "a/b" {
		t.Fatalf("expected copy-id action, got: %+v", got[0].Action)
	}
}

func TestHandleQuery_ModelsFailure(t *testing.T) {
	r, _, catalog, _ := newTestRelay(confWithKey())
	catalog.err = models.ErrTimeout
	got := r.HandleQuery(context.Background(), "models")
	if len(got) != 1 {
		t.Fatalf("expected single error row, got: %+v", got)
	}
	testboil.AssertStringContains(t, got[0].Title, "timed out")
}

func TestHandleQuery_AskWithoutKeySkipsNetwork(t *testing.T) {
	r, _, _, querier := newTestRelay(config.Default)
	got := r.HandleQuery(context.Background(), "why is the sky blue")
	if len(got) != 1 {
		t.Fatalf("expected single instruction row, got: %+v", got)
	}
	testboil.AssertStringContains(t, got[0].Subtitle, "setkey")
	if got[0].Action.Kind != models.ActionNoop {
		t.Fatalf("expected noop action, got: %+v", got[0].Action)
	}
	if querier.calls != 0 {
		t.Fatalf("expected no network call without key, got: %v", querier.calls)
	}
}

func TestHandleQuery_AskHappyPath(t *testing.T) {
	r, _, _, querier := newTestRelay(confWithKey())
	querier.res = models.QueryResult{AnswerText: "Paris.", ModelUsed: "openai/gpt-4o"}

	got := r.HandleQuery(context.Background(), "What is the capital of France?")
	if len(got) != 2 {
		t.Fatalf("expected copy + editor rows, got: %+v", got)
	}
	testboil.AssertStringContains(t, got[0].Title, "Paris.")
	if got[0].Action.Kind != models.ActionCopyToClipboard || got[0].Action.Text != "Paris." {
		t.Fatalf("expected copy action first, got: %+v", got[0].Action)
	}
	if got[1].Action.Kind != models.ActionOpenInEditor || got[1].Action.Text != "Paris." {
		t.Fatalf("expected editor action second, got: %+v", got[1].Action)
	}
	if want := []string{"What is the capital of France?", "openai/gpt-4o"}; querier.gotArgs[0] != want[0] || querier.gotArgs[1] != want[1] {
		t.Fatalf("expected %v, got: %v", want, querier.gotArgs)
	}
}

func TestHandleQuery_AskTruncatesLongAnswers(t *testing.T) {
	r, _, _, querier := newTestRelay(confWithKey())
	long := strings.Repeat("word ", 100)
	querier.res = models.QueryResult{AnswerText: long, ModelUsed: "m"}

	got := r.HandleQuery(context.Background(), "ramble please")
	if len([]rune(got[0].Title)) > 100 {
		t.Fatalf("expected truncated title, got %v runes", len([]rune(got[0].Title)))
	}
	if got[0].Action.Text != long {
		t.Fatalf("copy action must carry the full answer")
	}
}

func TestHandleQuery_AskRateLimitedNoRetry(t *testing.T) {
	r, _, _, querier := newTestRelay(confWithKey())
	querier.err = models.ErrRateLimited

	got := r.HandleQuery(context.Background(), "hello")
	if len(got) != 1 {
		t.Fatalf("expected single error row, got: %+v", got)
	}
	testboil.AssertStringContains(t, got[0].Title, "Rate limited")
	if got[0].Action.Kind != models.ActionNoop {
		t.Fatalf("expected noop action, got: %+v", got[0].Action)
	}
	if querier.calls != 1 {
		t.Fatalf("expected exactly one attempt, got: %v", querier.calls)
	}
}

func TestHandleQuery_LoadFailureStillRenders(t *testing.T) {
	store := &memStore{loadErr: &models.ErrConfigPersistence{Err: context.DeadlineExceeded}}
	r := New(store, &stubCatalog{}, &stubQuerier{})
	got := r.HandleQuery(context.Background(), "")
	if len(got) == 0 {
		t.Fatalf("expected renderable rows despite load failure")
	}
	// The defaults take over, so the welcome text still names the keyword
	testboil.AssertStringContains(t, got[len(got)-1].Subtitle, config.Default.ActionKeyword)
}

func TestHandleQuery_EnvKeyUsedWhenConfigFileIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ortrConfig.json"), []byte(`{not json`), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Setenv(config.APIKeyEnv, "sk-or-v1-envkey-abcdef")

	querier := &stubQuerier{res: models.QueryResult{AnswerText: "Paris.", ModelUsed: "openai/gpt-4o"}}
	r := New(config.NewFileStore(dir), &stubCatalog{}, querier)

	got := r.HandleQuery(context.Background(), "what is the capital of France")
	if querier.calls != 1 {
		t.Fatalf("expected one query despite corrupt config, got: %v", querier.calls)
	}
	if querier.gotKey.Reveal() != "sk-or-v1-envkey-abcdef" {
		t.Fatalf("expected env key, got: %q", querier.gotKey.Reveal())
	}
	for _, item := range got {
		if strings.Contains(item.Title, "API key not set") {
			t.Fatalf("unexpected missing-key row: %+v", item)
		}
	}
	testboil.AssertStringContains(t, got[0].Title, "Paris.")
}
