package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/oshokin/fliptime/internal/config"
	"github.com/oshokin/fliptime/internal/logger"
	"github.com/oshokin/fliptime/internal/lunar"
	"github.com/oshokin/fliptime/internal/repository/alarms"
	"github.com/oshokin/fliptime/internal/repository/settings"
	"github.com/oshokin/fliptime/internal/service/clock"
	"github.com/oshokin/fliptime/internal/service/effects"
	"github.com/oshokin/fliptime/internal/service/scheduler"
	"github.com/oshokin/fliptime/internal/service/wakelock"
	"github.com/oshokin/fliptime/internal/service/watcher"
	"github.com/oshokin/fliptime/internal/timesource"
	"github.com/oshokin/fliptime/internal/ui"
)

// Options controls one clock run.
type Options struct {
	// Config is the loaded configuration.
	Config *config.Config
	// Headless runs without the terminal UI, reporting to the log.
	Headless bool
	// Ephemeral keeps settings and alarms in memory only.
	Ephemeral bool
	// Clock overrides the wall clock. Nil means the real one.
	Clock clockwork.Clock
	// Bell receives the alarm tone. Nil means stderr.
	Bell io.Writer
}

// ErrNoConfig is returned when Run is called without a configuration.
var ErrNoConfig = errors.New("no configuration")

// Run starts the clock and blocks until ctx is canceled or the user quits.
func Run(ctx context.Context, opts *Options) error {
	if opts == nil || opts.Config == nil {
		return ErrNoConfig
	}

	ctx = logger.WithName(ctx, "fliptime")

	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	if opts.Bell == nil {
		opts.Bell = os.Stderr
	}

	if !opts.Config.DisableWakeLock {
		lock, err := wakelock.Acquire(ctx)
		if err != nil {
			// The clock works without it; the display may just go to sleep.
			logger.WarnKV(ctx, "Wake lock unavailable", "error", err)
		}

		defer lock.Release()
	}

	stores := OpenStores(opts.Config, opts.Ephemeral)

	logger.InfoKV(ctx, "Starting clock",
		"headless", opts.Headless,
		"ephemeral", opts.Ephemeral,
		"data_dir", opts.Config.DataDir)

	if opts.Headless {
		return runHeadless(ctx, opts, stores)
	}

	return runTerminal(ctx, opts, stores)
}

// runTerminal drives the engine from the bubbletea loop. Ticks and reloads are
// delivered as messages so the engine is only touched by that loop.
func runTerminal(ctx context.Context, opts *Options, stores *Stores) error {
	cfg := opts.Config

	board := ui.NewBoard(cfg.FlipDuration, cfg.FlashDuration, effects.NewBell(opts.Bell))

	engine := clock.New(clock.Dependencies{
		Source:    timesource.New(opts.Clock),
		Lunar:     lunar.NewCalendar(),
		Presenter: board,
		Effects:   board,
		Settings:  stores.Settings,
		Alarms:    stores.Alarms,
	})
	engine.Start(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)

	// Any failing group member shuts the UI down with the rest.
	program := tea.NewProgram(ui.NewModel(ctx, engine, board, cfg),
		tea.WithAltScreen(),
		tea.WithContext(groupCtx))

	group.Go(func() error {
		defer cancel()

		_, err := program.Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run terminal UI: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		return scheduler.New(opts.Clock, cfg.TickInterval).Run(groupCtx, func(context.Context, time.Time) {
			program.Send(ui.TickMsg{})
		})
	})

	if reloads := newWatcher(ctx, stores); reloads != nil {
		group.Go(func() error {
			watch(groupCtx, reloads, func(change watcher.Change) {
				program.Send(ui.ReloadMsg{Change: change})
			})

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	logger.Info(ctx, "Clock stopped")

	return nil
}

// headlessEvent is either a tick (zero value) or a reload.
type headlessEvent struct {
	reload watcher.Change
}

// runHeadless funnels ticks and reloads into one goroutine that owns the engine.
func runHeadless(ctx context.Context, opts *Options, stores *Stores) error {
	cfg := opts.Config
	log := logger.FromContext(ctx)

	engine := clock.New(clock.Dependencies{
		Source:    timesource.New(opts.Clock),
		Lunar:     lunar.NewCalendar(),
		Presenter: clock.NewLogPresenter(log),
		Effects:   clock.NewLogEffects(effects.NewBell(opts.Bell), log),
		Settings:  stores.Settings,
		Alarms:    stores.Alarms,
	})
	engine.Start(ctx)

	events := make(chan headlessEvent)
	send := func(ctx context.Context, event headlessEvent) {
		select {
		case events <- event:
		case <-ctx.Done():
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		for {
			select {
			case <-groupCtx.Done():
				return nil
			case event := <-events:
				switch event.reload {
				case watcher.SettingsChanged:
					engine.ReloadSettings(groupCtx)
				case watcher.AlarmsChanged:
					engine.ReloadAlarms(groupCtx)
				default:
					engine.Tick(groupCtx)
				}
			}
		}
	})

	group.Go(func() error {
		return scheduler.New(opts.Clock, cfg.TickInterval).Run(groupCtx, func(ctx context.Context, _ time.Time) {
			send(ctx, headlessEvent{})
		})
	})

	if reloads := newWatcher(ctx, stores); reloads != nil {
		group.Go(func() error {
			watch(groupCtx, reloads, func(change watcher.Change) {
				send(groupCtx, headlessEvent{reload: change})
			})

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	logger.Info(ctx, "Clock stopped")

	return nil
}

// watch runs the store watcher until ctx ends. Live reload is optional: when
// the watcher cannot start, the clock keeps running on its in-memory state.
func watch(ctx context.Context, reloads *watcher.Watcher, notify func(watcher.Change)) {
	if err := reloads.Run(ctx, notify); err != nil {
		logger.WarnKV(ctx, "Live reload disabled", "error", err)
	}
}

// newWatcher watches the record files of the file-backed store. It returns nil
// for in-memory stores.
func newWatcher(ctx context.Context, stores *Stores) *watcher.Watcher {
	if stores.File == nil {
		return nil
	}

	files := make(map[string]watcher.Change, 2)

	for key, change := range map[string]watcher.Change{
		settings.Key: watcher.SettingsChanged,
		alarms.Key:   watcher.AlarmsChanged,
	} {
		path, err := stores.File.Path(key)
		if err != nil {
			logger.WarnKV(ctx, "Not watching record", "key", key, "error", err)

			continue
		}

		files[path] = change
	}

	return watcher.New(stores.File.Dir(), files)
}
