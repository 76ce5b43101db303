package alarms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/oshokin/fliptime/internal/domain/clock"
	"github.com/oshokin/fliptime/internal/logger"
	"github.com/oshokin/fliptime/internal/repository/kv"
)

// Key is the store key of the alarm list.
const Key = "fliptime-alarms"

// ErrCorrupt is reported when the stored list cannot be decoded.
var ErrCorrupt = errors.New("alarm list is corrupt")

// record is the persisted JSON shape of one alarm.
type record struct {
	Time    string `json:"time"`
	Enabled bool   `json:"enabled"`
}

// Store loads and saves the alarm list.
type Store struct {
	// kv is the backing key-value store.
	kv kv.Store
}

// New creates an alarm store on top of a key-value store.
func New(store kv.Store) *Store {
	return &Store{kv: store}
}

// Load returns the persisted alarms in insertion order.
// A missing or corrupt list yields an empty slice; entries with an invalid time are dropped.
func (s *Store) Load(ctx context.Context) []domain.Alarm {
	alarms, err := s.load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, kv.ErrNotFound):
		logger.Debug(ctx, "No saved alarms")
	default:
		logger.WarnKV(ctx, "Saved alarms unusable, starting with none", "error", err)
	}

	return alarms
}

// Save persists the whole list in one write.
func (s *Store) Save(ctx context.Context, alarms []domain.Alarm) error {
	records := make([]record, 0, len(alarms))
	for _, alarm := range alarms {
		records = append(records, record{
			Time:    alarm.TimeOfDay,
			Enabled: alarm.Enabled,
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode alarms: %w", err)
	}

	if err = s.kv.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("save alarms: %w", err)
	}

	return nil
}

// load reads and decodes the list, always returning a non-nil slice.
func (s *Store) load(ctx context.Context) ([]domain.Alarm, error) {
	alarms := make([]domain.Alarm, 0)

	raw, err := s.kv.Get(ctx, Key)
	if err != nil {
		return alarms, err
	}

	var records []record
	if err = json.Unmarshal([]byte(raw), &records); err != nil {
		return alarms, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	for i, r := range records {
		timeOfDay, parseErr := domain.ParseTimeOfDay(r.Time)
		if parseErr != nil {
			logger.WarnKV(ctx, "Dropping saved alarm", "index", i, "error", parseErr)

			continue
		}

		alarms = append(alarms, domain.Alarm{
			TimeOfDay: timeOfDay,
			Enabled:   r.Enabled,
		})
	}

	return alarms, nil
}
