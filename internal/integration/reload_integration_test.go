package integration

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/fliptime/internal/config"
	"github.com/oshokin/fliptime/internal/service/app"
)

// syncBuffer collects the alarm tone written by the running clock.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// TestHeadless_PicksUpAlarmAddedElsewhere adds an alarm through a second engine
// over the same data directory, as "fliptime alarm add" does, and waits for the
// running clock to ring it.
func TestHeadless_PicksUpAlarmAddedElsewhere(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		DataDir:         t.TempDir(),
		DisableWakeLock: true,
	}
	require.NoError(t, config.Validate(cfg))

	// 07:00:00 in Asia/Taipei, before any alarm exists.
	fake := clockwork.NewFakeClockAt(time.Date(2026, time.October, 18, 23, 0, 0, 0, time.UTC))
	bell := new(syncBuffer)

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- app.Run(runCtx, &app.Options{
			Config:   cfg,
			Headless: true,
			Clock:    fake,
			Bell:     bell,
		})
	}()

	require.NoError(t, fake.BlockUntilContext(runCtx, 1))
	require.Empty(t, bell.String())

	ctx := context.Background()
	other := app.NewEngine(ctx, app.OpenStores(cfg, false), fake)

	_, err := other.AddAlarm(ctx, "07:00")
	require.NoError(t, err)

	// Each step lands on 07:00:00 of the next day; the alarm rings once the
	// running clock has reloaded the list.
	require.Eventually(t, func() bool {
		fake.Advance(24 * time.Hour)

		return strings.Contains(bell.String(), "\a")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

// TestHeadless_EphemeralIgnoresDisk verifies that an ephemeral clock neither
// reads nor watches the data directory.
func TestHeadless_EphemeralIgnoresDisk(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		DataDir:         t.TempDir(),
		DisableWakeLock: true,
	}
	require.NoError(t, config.Validate(cfg))

	ctx := context.Background()
	seed := app.NewEngine(ctx, app.OpenStores(cfg, false), nil)

	_, err := seed.AddAlarm(ctx, "07:00")
	require.NoError(t, err)

	fake := clockwork.NewFakeClockAt(time.Date(2026, time.October, 18, 22, 59, 59, 0, time.UTC))
	bell := new(syncBuffer)

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- app.Run(runCtx, &app.Options{
			Config:    cfg,
			Headless:  true,
			Ephemeral: true,
			Clock:     fake,
			Bell:      bell,
		})
	}()

	require.NoError(t, fake.BlockUntilContext(runCtx, 1))
	fake.Advance(time.Second)

	// Give the tick time to run before checking that nothing rang.
	time.Sleep(100 * time.Millisecond)
	require.Empty(t, bell.String())

	cancel()
	require.NoError(t, <-done)
}
