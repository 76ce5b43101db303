package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/oshokin/fliptime/internal/domain/clock"
	"github.com/oshokin/fliptime/internal/logger"
	"github.com/oshokin/fliptime/internal/repository/kv"
)

// Key is the store key of the settings record.
const Key = "fliptime-settings"

// ErrCorrupt is reported when the stored record cannot be decoded.
var ErrCorrupt = errors.New("settings record is corrupt")

// record is the persisted JSON shape.
type record struct {
	Timezone string `json:"timezone"`
	Theme    string `json:"theme"`
	// Is24Hour is a pointer so an absent field can default to true.
	Is24Hour *bool `json:"is24Hour,omitempty"`
}

// Store loads and saves Settings.
type Store struct {
	// kv is the backing key-value store.
	kv kv.Store
}

// New creates a settings store on top of a key-value store.
func New(store kv.Store) *Store {
	return &Store{kv: store}
}

// Load returns the persisted settings merged over the defaults.
// A missing or corrupt record yields the defaults; the cause is logged, never returned.
func (s *Store) Load(ctx context.Context) domain.Settings {
	settings, err := s.load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, kv.ErrNotFound):
		logger.Debug(ctx, "No saved settings, using defaults")
	default:
		logger.WarnKV(ctx, "Saved settings unusable, using defaults", "error", err)
	}

	return settings
}

// Save persists the full settings record.
func (s *Store) Save(ctx context.Context, settings domain.Settings) error {
	is24Hour := settings.HourFormat.Is24Hour()

	data, err := json.Marshal(record{
		Timezone: settings.Timezone,
		Theme:    settings.Theme,
		Is24Hour: &is24Hour,
	})
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err = s.kv.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}

// load reads and decodes the record, always returning usable settings.
func (s *Store) load(ctx context.Context) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	raw, err := s.kv.Get(ctx, Key)
	if err != nil {
		return settings, err
	}

	var saved record
	if err = json.Unmarshal([]byte(raw), &saved); err != nil {
		return settings, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	if saved.Timezone != "" {
		settings.Timezone = saved.Timezone
	}

	if saved.Theme != "" {
		settings.Theme = saved.Theme
	}

	if saved.Is24Hour != nil {
		settings.HourFormat = domain.HourFormatFrom24(*saved.Is24Hour)
	}

	return settings, nil
}
