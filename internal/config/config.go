// Package config holds the durable plugin state: the API key, the
// default model and the input grammar knobs. State lives in a JSON
// file under the user config dir, created with defaults on first run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/shamanicarts/ortr/internal/models"
	"github.com/shamanicarts/ortr/internal/utils"
)

const (
	configFileName = "ortrConfig.json"
	// legacySettingsFile is the settings file name used by early
	// releases, migrated to configFileName on load
	legacySettingsFile = "settings.json"
	// APIKeyEnv overrides the stored key when set. Read-only: it is
	// never written back to the config file.
	APIKeyEnv = "OPENROUTER_API_KEY"
)

// Configuration for one plugin invocation
type Configuration struct {
	APIKey        models.APIKey `json:"api_key"`
	DefaultModel  string        `json:"default_model"`
	Delimiter     string        `json:"delimiter"`
	ActionKeyword string        `json:"action_keyword"`
}

var Default = Configuration{
	DefaultModel:  "openai/gpt-3.5-turbo",
	ActionKeyword: "ortr",
}

// Store is the persistence seam. The relay only talks to this
// interface so tests can swap in an in-memory fake.
type Store interface {
	Load() (Configuration, error)
	Save(Configuration) error
	SetAPIKey(models.APIKey) error
	SetModel(string) error
}

// FileStore persists the configuration as JSON in configDir. All
// mutations hold a mutex, so rapid concurrent invocations never
// observe interleaved partial updates.
type FileStore struct {
	mu        sync.Mutex
	configDir string
}

func NewFileStore(configDir string) *FileStore {
	return &FileStore{configDir: configDir}
}

// NewDefaultFileStore places the store in <UserConfigDir>/.ortr,
// honoring the ORTR_CONFIG_HOME override
func NewDefaultFileStore() (*FileStore, error) {
	dir, err := utils.EnsureOrtrConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find config dir: %w", err)
	}
	return NewFileStore(dir), nil
}

// Load the configuration, creating it with defaults on first run.
// When OPENROUTER_API_KEY is set it takes precedence over the stored
// key in the returned value, without touching the file. The override
// is independent of the file, so it applies even when the stored copy
// can't be read.
func (f *FileStore) Load() (Configuration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conf, err := f.load()
	if envKey := os.Getenv(APIKeyEnv); envKey != "" {
		conf.APIKey = models.APIKey(envKey)
	}
	return conf, err
}

// load reads the stored state without the env override. Callers hold f.mu.
func (f *FileStore) load() (Configuration, error) {
	dflt := Default
	conf, err := utils.LoadConfigFromFile(f.configDir, configFileName, migrateLegacySettings, &dflt)
	if err != nil {
		return Default, &models.ErrConfigPersistence{Err: err}
	}
	return conf, nil
}

func (f *FileStore) Save(conf Configuration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.save(conf)
}

func (f *FileStore) save(conf Configuration) error {
	if err := utils.EnsureDir(f.configDir); err != nil {
		return &models.ErrConfigPersistence{Err: err}
	}
	err := utils.WriteJSON(filepath.Join(f.configDir, configFileName), &conf)
	if err != nil {
		return &models.ErrConfigPersistence{Err: err}
	}
	return nil
}

// SetAPIKey persists a new API key. The stored value is updated even
// when the env override is active, the override simply keeps shadowing
// it on Load.
func (f *FileStore) SetAPIKey(key models.APIKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	conf, err := f.load()
	if err != nil {
		return err
	}
	conf.APIKey = key
	return f.save(conf)
}

// SetModel persists a new default model id
func (f *FileStore) SetModel(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	conf, err := f.load()
	if err != nil {
		return err
	}
	conf.DefaultModel = id
	return f.save(conf)
}

// migrateLegacySettings renames the settings.json of early releases
// to the current config file name, keeping its contents
func migrateLegacySettings(configDirPath string) error {
	legacyPath := filepath.Join(configDirPath, legacySettingsFile)
	if _, err := os.Stat(legacyPath); os.IsNotExist(err) {
		return nil
	}
	newPath := filepath.Join(configDirPath, configFileName)
	if _, err := os.Stat(newPath); err == nil {
		// Both exist, current one wins
		return nil
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("migrating legacy settings: '%v' -> '%v'\n", legacyPath, newPath))
	}
	if err := os.Rename(legacyPath, newPath); err != nil {
		return fmt.Errorf("failed to rename legacy settings: %w", err)
	}
	return nil
}
