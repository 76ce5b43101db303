package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oshokin/fliptime/internal/config"
	domain "github.com/oshokin/fliptime/internal/domain/clock"
	"github.com/oshokin/fliptime/internal/logger"
)

// lockedBuffer is a bytes.Buffer safe for one writer and one reader.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		DataDir:         t.TempDir(),
		DisableWakeLock: true,
	}
	require.NoError(t, config.Validate(cfg))

	return cfg
}

// TestOpenStores verifies that file-backed stores persist and ephemeral ones do not.
func TestOpenStores(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := testConfig(t)

	stores := OpenStores(cfg, false)
	require.NotNil(t, stores.File)
	require.NoError(t, stores.Alarms.Save(ctx, []domain.Alarm{{TimeOfDay: "07:00", Enabled: true}}))
	require.Len(t, OpenStores(cfg, false).Alarms.Load(ctx), 1)

	ephemeral := OpenStores(cfg, true)
	require.Nil(t, ephemeral.File)
	require.Empty(t, ephemeral.Alarms.Load(ctx))
}

// TestNewEngine verifies that one-shot engines persist user actions.
func TestNewEngine(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := OpenStores(testConfig(t), false)

	engine := NewEngine(ctx, stores, clockwork.NewFakeClock())
	_, err := engine.AddAlarm(ctx, "6:45")
	require.NoError(t, err)
	require.NoError(t, engine.SetTimezone(ctx, "Europe/London"))

	require.Equal(t, []domain.Alarm{{TimeOfDay: "06:45", Enabled: true}}, stores.Alarms.Load(ctx))
	require.Equal(t, "Europe/London", stores.Settings.Load(ctx).Timezone)
}

// TestRun_NoConfig verifies the missing configuration error.
func TestRun_NoConfig(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Run(context.Background(), &Options{}), ErrNoConfig)
}

// TestRun_HeadlessAlarm runs the headless clock across an alarm minute.
func TestRun_HeadlessAlarm(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig(t)
	require.NoError(t, OpenStores(cfg, false).Alarms.Save(ctx, []domain.Alarm{{TimeOfDay: "07:00", Enabled: true}}))

	// 06:59:59 in Asia/Taipei.
	fake := clockwork.NewFakeClockAt(time.Date(2026, time.October, 18, 22, 59, 59, 0, time.UTC))
	bell := new(lockedBuffer)
	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, &Options{
			Config:   cfg,
			Headless: true,
			Clock:    fake,
			Bell:     bell,
		})
	}()

	require.NoError(t, fake.BlockUntilContext(ctx, 1))
	require.Empty(t, bell.String())

	fake.Advance(time.Second)

	require.Eventually(t, func() bool {
		return strings.Contains(bell.String(), "\a")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("headless run did not stop")
	}
}

// TestRun_HeadlessUnusableDataDir verifies that a data directory the watcher
// cannot use only disables live reload and the clock keeps ticking.
func TestRun_HeadlessUnusableDataDir(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o600))

	cfg := &config.Config{
		DataDir:         filepath.Join(blocker, "data"),
		DisableWakeLock: true,
	}
	require.NoError(t, config.Validate(cfg))

	core, logs := observer.New(zapcore.DebugLevel)

	ctx, cancel := context.WithCancel(logger.ToContext(context.Background(), zap.New(core).Sugar()))
	defer cancel()

	fake := clockwork.NewFakeClockAt(time.Date(2026, time.October, 18, 22, 59, 50, 0, time.UTC))
	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, &Options{
			Config:   cfg,
			Headless: true,
			Clock:    fake,
			Bell:     new(lockedBuffer),
		})
	}()

	require.Eventually(t, func() bool {
		return logs.FilterMessage("Live reload disabled").Len() == 1
	}, 2*time.Second, 10*time.Millisecond)

	waitCtx, waitCancel := context.WithTimeout(ctx, 2*time.Second)
	require.NoError(t, fake.BlockUntilContext(waitCtx, 1))
	waitCancel()

	// The first render sets three cards; every later second flips at least one.
	require.Eventually(t, func() bool {
		fake.Advance(time.Second)

		return logs.FilterMessage("Card flipped").Len() >= 3+3
	}, 2*time.Second, 20*time.Millisecond)

	select {
	case err := <-done:
		t.Fatalf("run stopped early: %v", err)
	default:
	}

	cancel()
	require.NoError(t, <-done)
}
