package tcm

import (
	"encoding/json"
	"strings"
	"sync"

	"tcm-go/internal/model"
)

// DefaultSettings are used whenever no settings have been saved, or the
// saved record cannot be decoded.
func DefaultSettings() model.Settings {
	return model.Settings{
		DefaultGroup: "Default",
		BatchSize:    20,
		AutoSave:     true,
	}
}

// SettingsRepository owns the appSettings record. Unlike the other
// collections this is a single object, not an array.
type SettingsRepository struct {
	store  Store
	logger Logger
	mu     sync.Mutex
}

// NewSettingsRepository creates a SettingsRepository.
func NewSettingsRepository(store Store, logger Logger) *SettingsRepository {
	return &SettingsRepository{store: store, logger: logger}
}

// Get returns the saved settings, or the defaults when nothing usable has
// been saved.
func (r *SettingsRepository) Get() model.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.store.Read(KeySettings)
	if err != nil {
		r.logger.Warn("reading settings failed, using defaults", "error", err)
		return DefaultSettings()
	}
	if len(data) == 0 {
		return DefaultSettings()
	}
	var s model.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		r.logger.Warn("settings record is corrupt, using defaults", "error", err)
		return DefaultSettings()
	}
	return s
}

// Put validates and persists the settings.
func (r *SettingsRepository) Put(s model.Settings) error {
	if strings.TrimSpace(s.DefaultGroup) == "" {
		return &ValidationError{Field: "defaultGroup", Reason: "must not be empty"}
	}
	if s.BatchSize < 1 || s.BatchSize > 100 {
		return &ValidationError{Field: "batchSize", Reason: "must be between 1 and 100"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(s)
	if err != nil {
		return &PersistenceError{Key: KeySettings, Op: "write", Err: err}
	}
	if err := r.store.Write(KeySettings, data); err != nil {
		return &PersistenceError{Key: KeySettings, Op: "write", Err: err}
	}
	return nil
}
