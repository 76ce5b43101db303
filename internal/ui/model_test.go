package ui

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/fliptime/internal/config"
	domain "github.com/oshokin/fliptime/internal/domain/clock"
	"github.com/oshokin/fliptime/internal/lunar"
	"github.com/oshokin/fliptime/internal/repository/alarms"
	"github.com/oshokin/fliptime/internal/repository/kv"
	"github.com/oshokin/fliptime/internal/repository/settings"
	"github.com/oshokin/fliptime/internal/service/clock"
	"github.com/oshokin/fliptime/internal/service/effects"
	"github.com/oshokin/fliptime/internal/service/watcher"
	"github.com/oshokin/fliptime/internal/timesource"
)

// fixture is a model wired to a real engine over in-memory stores.
type fixture struct {
	model    *Model
	clock    *clockwork.FakeClock
	bell     *bytes.Buffer
	settings *settings.Store
	alarms   *alarms.Store
}

// newFixture starts at 07:59:58 Taipei time on 2026-10-19.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx := context.Background()
	fake := clockwork.NewFakeClockAt(time.Date(2026, time.October, 18, 23, 59, 58, 0, time.UTC))
	store := kv.NewMemoryStore()
	bell := new(bytes.Buffer)

	board := NewBoard(config.DefaultFlipDuration, config.DefaultFlashDuration, effects.NewBell(bell))
	settingsStore := settings.New(store)
	alarmStore := alarms.New(store)

	engine := clock.New(clock.Dependencies{
		Source:    timesource.New(fake),
		Lunar:     lunar.NewCalendar(),
		Presenter: board,
		Effects:   board,
		Settings:  settingsStore,
		Alarms:    alarmStore,
	})
	engine.Start(ctx)

	return &fixture{
		model:    NewModel(ctx, engine, board, config.Default()),
		clock:    fake,
		bell:     bell,
		settings: settingsStore,
		alarms:   alarmStore,
	}
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	_, cmd := f.model.Update(msg)

	return cmd
}

func (f *fixture) tick(advance time.Duration) tea.Cmd {
	f.clock.Advance(advance)

	return f.send(TickMsg{})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// TestModel_FirstTickAndFlip verifies that the first tick sets the cards and later ticks flip them.
func TestModel_FirstTickAndFlip(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	require.Nil(t, f.tick(0))

	board := f.model.board
	require.Equal(t, "07", board.cards[domain.FieldHour].top)
	require.Equal(t, "59", board.cards[domain.FieldMinute].top)
	require.Equal(t, "58", board.cards[domain.FieldSecond].top)
	require.Equal(t, "2026年 10月 19日 星期一", board.gregorian)
	require.NotEmpty(t, board.lunar)

	require.NotNil(t, f.tick(time.Second))
	require.True(t, board.cards[domain.FieldSecond].flipping)
	require.False(t, board.cards[domain.FieldMinute].flipping)

	f.tick(time.Second)
	require.True(t, board.cards[domain.FieldHour].flipping)
	require.Equal(t, "08", board.cards[domain.FieldHour].top)
	require.Equal(t, "07", board.cards[domain.FieldHour].bottom)
}

// TestModel_AlarmFiresOnce verifies that an alarm added through the UI rings at its minute.
func TestModel_AlarmFiresOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.tick(0)

	f.send(runes("a"))
	require.Equal(t, modeAlarms, f.model.mode)

	f.send(runes("n"))
	require.True(t, f.model.input.Focused())

	f.send(runes("08:00"))
	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, f.model.input.Focused())
	require.Equal(t, []domain.Alarm{{TimeOfDay: "08:00", Enabled: true}}, f.alarms.Load(context.Background()))

	f.tick(time.Second)
	require.Empty(t, f.bell.String())

	f.tick(time.Second)
	require.Equal(t, "\a", f.bell.String())
	require.True(t, f.model.board.flashing)

	f.tick(time.Second)
	require.Equal(t, "\a", f.bell.String())
}

// TestModel_InvalidAlarmInput verifies that a malformed time keeps the input open and reports it.
func TestModel_InvalidAlarmInput(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	f.send(runes("a"))
	f.send(runes("n"))
	f.send(runes("25:00"))
	f.send(tea.KeyMsg{Type: tea.KeyEnter})

	require.True(t, f.model.input.Focused())
	require.Contains(t, f.model.status, "add alarm")
	require.Empty(t, f.model.engine.Alarms())

	f.send(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, f.model.input.Focused())
	require.Equal(t, modeAlarms, f.model.mode)
}

// TestModel_ToggleAndDeleteAlarm verifies list navigation, toggling and removal.
func TestModel_ToggleAndDeleteAlarm(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.model.engine.AddAlarm(ctx, "06:30")
	require.NoError(t, err)
	_, err = f.model.engine.AddAlarm(ctx, "07:00")
	require.NoError(t, err)

	f.send(runes("a"))
	f.send(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, f.model.alarmCursor)

	f.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.Equal(t, []domain.Alarm{
		{TimeOfDay: "06:30", Enabled: true},
		{TimeOfDay: "07:00", Enabled: false},
	}, f.alarms.Load(ctx))

	f.send(runes("d"))
	require.Equal(t, []domain.Alarm{{TimeOfDay: "06:30", Enabled: true}}, f.alarms.Load(ctx))
	require.Equal(t, 0, f.model.alarmCursor)

	f.send(runes("d"))
	require.Empty(t, f.alarms.Load(ctx))

	f.send(runes("d"))
	require.Equal(t, 0, f.model.alarmCursor)

	f.send(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, modeClock, f.model.mode)
}

// TestModel_SettingsPicker verifies timezone, format and theme changes from the settings screen.
func TestModel_SettingsPicker(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.tick(0)

	f.send(runes("s"))
	require.Equal(t, modeSettings, f.model.mode)
	require.Equal(t, 0, f.model.zoneCursor)

	f.send(tea.KeyMsg{Type: tea.KeyDown})
	f.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "Asia/Tokyo", f.settings.Load(ctx).Timezone)

	f.tick(0)
	require.Equal(t, "08", f.model.board.cards[domain.FieldHour].top)
	require.False(t, f.model.board.cards[domain.FieldHour].flipping)

	f.send(runes("f"))
	require.Equal(t, domain.Hour12, f.settings.Load(ctx).HourFormat)

	f.send(runes("4"))
	require.Equal(t, "retro", f.settings.Load(ctx).Theme)
	require.Equal(t, "retro", f.model.board.theme.Name)

	f.send(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, modeClock, f.model.mode)
}

// TestModel_ClockKeys verifies the shortcuts available on the clock face.
func TestModel_ClockKeys(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	f.send(runes("t"))
	require.Equal(t, "dark", f.settings.Load(ctx).Theme)

	f.send(runes("f"))
	require.Equal(t, domain.Hour12, f.settings.Load(ctx).HourFormat)
	require.Equal(t, "Format: 12H", f.model.status)

	require.NotNil(t, f.send(runes("q")))
	require.NotNil(t, f.send(tea.KeyMsg{Type: tea.KeyCtrlC}))
}

// TestModel_Reload verifies that external writes are picked up on reload messages.
func TestModel_Reload(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.alarms.Save(ctx, []domain.Alarm{{TimeOfDay: "09:15", Enabled: true}}))
	f.send(ReloadMsg{Change: watcher.AlarmsChanged})
	require.Len(t, f.model.engine.Alarms(), 1)

	next := domain.DefaultSettings()
	next.Theme = "light"
	require.NoError(t, f.settings.Save(ctx, next))
	f.send(ReloadMsg{Change: watcher.SettingsChanged})
	require.Equal(t, "light", f.model.board.theme.Name)
}

// TestModel_View verifies that every screen renders.
func TestModel_View(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	f.tick(0)

	require.Contains(t, f.model.View(), "星期一")

	f.send(runes("s"))
	require.Contains(t, f.model.View(), "Asia/Taipei")

	f.send(tea.KeyMsg{Type: tea.KeyEsc})
	f.send(runes("a"))
	require.Contains(t, f.model.View(), "no alarms")
}
