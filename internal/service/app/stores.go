package app

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/oshokin/fliptime/internal/config"
	"github.com/oshokin/fliptime/internal/logger"
	"github.com/oshokin/fliptime/internal/lunar"
	"github.com/oshokin/fliptime/internal/repository/alarms"
	"github.com/oshokin/fliptime/internal/repository/kv"
	"github.com/oshokin/fliptime/internal/repository/settings"
	"github.com/oshokin/fliptime/internal/service/clock"
	"github.com/oshokin/fliptime/internal/service/effects"
	"github.com/oshokin/fliptime/internal/timesource"
)

// Stores are the persistence backends of one run.
type Stores struct {
	// KV is the underlying key-value store.
	KV kv.Store
	// File is the file-backed store, nil when ephemeral.
	File *kv.FileStore
	// Settings persists the settings record.
	Settings *settings.Store
	// Alarms persists the alarm list.
	Alarms *alarms.Store
}

// OpenStores returns file-backed stores in cfg.DataDir, or in-memory ones
// when ephemeral is set.
func OpenStores(cfg *config.Config, ephemeral bool) *Stores {
	if ephemeral {
		store := kv.NewMemoryStore()

		return &Stores{
			KV:       store,
			Settings: settings.New(store),
			Alarms:   alarms.New(store),
		}
	}

	store := kv.NewFileStore(cfg.DataDir)

	return &Stores{
		KV:       store,
		File:     store,
		Settings: settings.New(store),
		Alarms:   alarms.New(store),
	}
}

// NewEngine creates and starts an engine that reports to the log. The one-shot
// CLI commands use it to run user actions through the same validation and
// persistence path as the interactive clock.
func NewEngine(ctx context.Context, stores *Stores, clk clockwork.Clock) *clock.Engine {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}

	log := logger.FromContext(ctx)

	engine := clock.New(clock.Dependencies{
		Source:    timesource.New(clk),
		Lunar:     lunar.NewCalendar(),
		Presenter: clock.NewLogPresenter(log),
		Effects:   clock.NewLogEffects(effects.NewBell(nil), log),
		Settings:  stores.Settings,
		Alarms:    stores.Alarms,
	})
	engine.Start(ctx)

	return engine
}
