package clock

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/oshokin/fliptime/internal/domain/clock"
	"github.com/oshokin/fliptime/internal/logger"
	"github.com/oshokin/fliptime/internal/lunar"
	"github.com/oshokin/fliptime/internal/service/alarm"
	"github.com/oshokin/fliptime/internal/timesource"
)

// Presenter is the display surface the engine drives.
type Presenter interface {
	// RenderFieldTransition flips a card from oldText to newText.
	// Equal texts mean the card is set directly without animation.
	RenderFieldTransition(field domain.Field, oldText, newText string)
	// RenderDateLabels replaces the Gregorian and lunar date lines.
	RenderDateLabels(gregorian, lunar string)
	// SetTheme switches the visual theme.
	SetTheme(theme string)
}

// TimeSource supplies calendar fields for a timezone.
type TimeSource interface {
	Now(timezone string) (timesource.Fields, error)
	Validate(timezone string) error
}

// SettingsStore persists Settings.
type SettingsStore interface {
	Load(ctx context.Context) domain.Settings
	Save(ctx context.Context, settings domain.Settings) error
}

// AlarmStore persists the alarm list.
type AlarmStore interface {
	Load(ctx context.Context) []domain.Alarm
	Save(ctx context.Context, alarms []domain.Alarm) error
}

// Status is the engine lifecycle state.
type Status int

const (
	// StatusUninitialized is the state before Start.
	StatusUninitialized Status = iota
	// StatusRunning is entered once by Start and never left.
	StatusRunning
)

var (
	// ErrNotRunning is returned by user actions issued before Start.
	ErrNotRunning = errors.New("clock engine is not running")
	// ErrAlarmIndexOutOfRange is returned for alarm positions outside the list.
	ErrAlarmIndexOutOfRange = errors.New("alarm index out of range")
	// ErrEmptyTheme is returned when an empty theme tag is applied.
	ErrEmptyTheme = errors.New("theme must not be empty")
)

// Dependencies are the collaborators an Engine is built from.
type Dependencies struct {
	// Source reads the current time.
	Source TimeSource
	// Lunar converts dates to lunar labels.
	Lunar lunar.Converter
	// Presenter receives card, date and theme updates.
	Presenter Presenter
	// Effects are triggered when an alarm fires. Optional.
	Effects alarm.Effects
	// Settings persists the settings record.
	Settings SettingsStore
	// Alarms persists the alarm list.
	Alarms AlarmStore
}

// Engine is the clock state machine.
type Engine struct {
	source        TimeSource
	lunar         lunar.Converter
	presenter     Presenter
	evaluator     *alarm.Evaluator
	settingsStore SettingsStore
	alarmStore    AlarmStore

	// state is what the engine believes is on screen.
	state domain.ClockState
	// alarms is the authoritative in-memory alarm list.
	alarms []domain.Alarm
	// goodTimezone is the last timezone that loaded successfully.
	goodTimezone string
	// lunarLabel is the last lunar label that converted successfully.
	lunarLabel string
	// status is the lifecycle state.
	status Status
}

// New creates an engine in StatusUninitialized.
func New(deps Dependencies) *Engine {
	return &Engine{
		source:        deps.Source,
		lunar:         deps.Lunar,
		presenter:     deps.Presenter,
		evaluator:     alarm.NewEvaluator(deps.Effects),
		settingsStore: deps.Settings,
		alarmStore:    deps.Alarms,
		state: domain.ClockState{
			Settings: domain.DefaultSettings(),
		},
		alarms:       make([]domain.Alarm, 0),
		goodTimezone: domain.DefaultTimezone,
	}
}

// Start loads settings and alarms, applies the theme and enters StatusRunning.
// Calling Start again is a no-op.
func (e *Engine) Start(ctx context.Context) {
	if e.status == StatusRunning {
		return
	}

	settings := domain.DefaultSettings()
	if e.settingsStore != nil {
		settings = e.settingsStore.Load(ctx)
	}

	if err := e.source.Validate(settings.Timezone); err != nil {
		logger.WarnKV(ctx, "Saved timezone unusable, using default",
			"timezone", settings.Timezone, "fallback", domain.DefaultTimezone, "error", err)

		settings.Timezone = domain.DefaultTimezone
	}

	if settings.Theme == "" {
		settings.Theme = domain.DefaultTheme
	}

	e.state = domain.ClockState{Settings: settings}
	e.goodTimezone = settings.Timezone

	if e.alarmStore != nil {
		e.alarms = e.alarmStore.Load(ctx)
	}

	e.presenter.SetTheme(settings.Theme)
	e.status = StatusRunning

	logger.InfoKV(ctx, "Clock started",
		"timezone", settings.Timezone,
		"theme", settings.Theme,
		"format", settings.HourFormat.String(),
		"alarms", len(e.alarms))
}

// Status returns the lifecycle state.
func (e *Engine) Status() Status {
	return e.status
}

// Settings returns a copy of the current settings.
func (e *Engine) Settings() domain.Settings {
	return e.state.Settings
}

// State returns a copy of the clock state.
func (e *Engine) State() domain.ClockState {
	return e.state.Clone()
}

// Alarms returns a copy of the alarm list.
func (e *Engine) Alarms() []domain.Alarm {
	return domain.CloneAlarms(e.alarms)
}

// Tick runs one clock update and returns the alarms that fired.
// A panic inside the tick is logged and contained so the caller keeps ticking.
func (e *Engine) Tick(ctx context.Context) (fired []domain.Alarm) {
	if e.status != StatusRunning {
		logger.Debug(ctx, "Tick ignored, engine not started")

		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorKV(ctx, "Tick failed", "panic", r)

			fired = nil
		}
	}()

	fields, ok := e.now(ctx)
	if !ok {
		return nil
	}

	settings := e.state.Settings
	displayed := domain.NewDisplayed(settings.HourFormat.Project(fields.Hour), fields.Minute, fields.Second)

	for _, field := range domain.Fields() {
		next := displayed.Value(field)

		if e.state.LastDisplayed == nil {
			e.presenter.RenderFieldTransition(field, next, next)

			continue
		}

		if prev := e.state.LastDisplayed.Value(field); prev != next {
			e.presenter.RenderFieldTransition(field, prev, next)
		}
	}

	e.state.LastDisplayed = &displayed

	e.renderDate(ctx, fields)

	return e.evaluator.Fire(ctx, fields.Second, fields.HourMinute(), e.alarms)
}

// now reads the time in the configured timezone, falling back to the last
// timezone that worked.
func (e *Engine) now(ctx context.Context) (timesource.Fields, bool) {
	fields, err := e.source.Now(e.state.Settings.Timezone)
	if err == nil {
		return fields, true
	}

	logger.WarnKV(ctx, "Time lookup failed, falling back",
		"timezone", e.state.Settings.Timezone, "fallback", e.goodTimezone, "error", err)

	if e.state.Settings.Timezone != e.goodTimezone {
		e.state.Settings.Timezone = e.goodTimezone
		e.state.ResetDisplayed()
	}

	fields, err = e.source.Now(e.goodTimezone)
	if err != nil {
		logger.ErrorKV(ctx, "Time lookup failed", "timezone", e.goodTimezone, "error", err)

		return timesource.Fields{}, false
	}

	return fields, true
}

// renderDate pushes both date labels, keeping the previous lunar label on failure.
func (e *Engine) renderDate(ctx context.Context, fields timesource.Fields) {
	if e.lunar != nil {
		date, err := e.lunar.Convert(fields.Date)
		if err != nil {
			logger.DebugKV(ctx, "Lunar conversion failed, keeping previous label", "error", err)
		} else {
			e.lunarLabel = date.String()
		}
	}

	e.presenter.RenderDateLabels(GregorianLabel(fields), e.lunarLabel)
}

// SetTimezone switches the display timezone. Unknown identifiers leave the
// current timezone in place and return timesource.ErrInvalidTimezone.
func (e *Engine) SetTimezone(ctx context.Context, timezone string) error {
	if e.status != StatusRunning {
		return ErrNotRunning
	}

	if err := e.source.Validate(timezone); err != nil {
		return fmt.Errorf("set timezone: %w", err)
	}

	if timezone == e.state.Settings.Timezone {
		return nil
	}

	e.state.Settings.Timezone = timezone
	e.goodTimezone = timezone
	e.state.ResetDisplayed()

	logger.InfoKV(ctx, "Timezone changed", "timezone", timezone)
	e.persistSettings(ctx)

	return nil
}

// SetHourFormat switches between 12- and 24-hour display.
func (e *Engine) SetHourFormat(ctx context.Context, format domain.HourFormat) error {
	if e.status != StatusRunning {
		return ErrNotRunning
	}

	if format == e.state.Settings.HourFormat {
		return nil
	}

	e.state.Settings.HourFormat = format
	e.state.ResetDisplayed()

	logger.InfoKV(ctx, "Hour format changed", "format", format.String())
	e.persistSettings(ctx)

	return nil
}

// ToggleHourFormat flips the hour format and returns the new one.
func (e *Engine) ToggleHourFormat(ctx context.Context) (domain.HourFormat, error) {
	next := e.state.Settings.HourFormat.Toggle()
	if err := e.SetHourFormat(ctx, next); err != nil {
		return e.state.Settings.HourFormat, err
	}

	return next, nil
}

// SetTheme applies and persists a theme tag.
func (e *Engine) SetTheme(ctx context.Context, theme string) error {
	if e.status != StatusRunning {
		return ErrNotRunning
	}

	if theme == "" {
		return ErrEmptyTheme
	}

	e.presenter.SetTheme(theme)

	if theme == e.state.Settings.Theme {
		return nil
	}

	e.state.Settings.Theme = theme

	logger.InfoKV(ctx, "Theme changed", "theme", theme)
	e.persistSettings(ctx)

	return nil
}

// AddAlarm appends an enabled alarm for timeOfDay ("HH:MM").
func (e *Engine) AddAlarm(ctx context.Context, timeOfDay string) (domain.Alarm, error) {
	if e.status != StatusRunning {
		return domain.Alarm{}, ErrNotRunning
	}

	normalized, err := domain.ParseTimeOfDay(timeOfDay)
	if err != nil {
		return domain.Alarm{}, err
	}

	added := domain.Alarm{TimeOfDay: normalized, Enabled: true}
	e.replaceAlarms(ctx, append(domain.CloneAlarms(e.alarms), added))

	logger.InfoKV(ctx, "Alarm added", "time", normalized)

	return added, nil
}

// ToggleAlarm flips the enabled flag of the alarm at index and returns it.
func (e *Engine) ToggleAlarm(ctx context.Context, index int) (domain.Alarm, error) {
	if e.status != StatusRunning {
		return domain.Alarm{}, ErrNotRunning
	}

	if index < 0 || index >= len(e.alarms) {
		return domain.Alarm{}, fmt.Errorf("%w: %d", ErrAlarmIndexOutOfRange, index)
	}

	next := domain.CloneAlarms(e.alarms)
	next[index].Enabled = !next[index].Enabled
	e.replaceAlarms(ctx, next)

	logger.InfoKV(ctx, "Alarm toggled", "time", next[index].TimeOfDay, "enabled", next[index].Enabled)

	return next[index], nil
}

// RemoveAlarm deletes the alarm at index.
func (e *Engine) RemoveAlarm(ctx context.Context, index int) error {
	if e.status != StatusRunning {
		return ErrNotRunning
	}

	if index < 0 || index >= len(e.alarms) {
		return fmt.Errorf("%w: %d", ErrAlarmIndexOutOfRange, index)
	}

	removed := e.alarms[index]

	next := make([]domain.Alarm, 0, len(e.alarms)-1)
	next = append(next, e.alarms[:index]...)
	next = append(next, e.alarms[index+1:]...)
	e.replaceAlarms(ctx, next)

	logger.InfoKV(ctx, "Alarm removed", "time", removed.TimeOfDay)

	return nil
}

// ReloadSettings re-reads the settings store after an external change.
// The cards are redrawn from scratch only when timezone or hour format changed.
func (e *Engine) ReloadSettings(ctx context.Context) {
	if e.status != StatusRunning || e.settingsStore == nil {
		return
	}

	loaded := e.settingsStore.Load(ctx)
	current := e.state.Settings

	if loaded.Timezone != current.Timezone {
		if err := e.source.Validate(loaded.Timezone); err != nil {
			logger.WarnKV(ctx, "Ignoring reloaded timezone", "timezone", loaded.Timezone, "error", err)
		} else {
			e.state.Settings.Timezone = loaded.Timezone
			e.goodTimezone = loaded.Timezone
			e.state.ResetDisplayed()
		}
	}

	if loaded.HourFormat != current.HourFormat {
		e.state.Settings.HourFormat = loaded.HourFormat
		e.state.ResetDisplayed()
	}

	if loaded.Theme != "" && loaded.Theme != current.Theme {
		e.state.Settings.Theme = loaded.Theme
		e.presenter.SetTheme(loaded.Theme)
	}

	if e.state.Settings != current {
		logger.InfoKV(ctx, "Settings reloaded",
			"timezone", e.state.Settings.Timezone,
			"theme", e.state.Settings.Theme,
			"format", e.state.Settings.HourFormat.String())
	}
}

// ReloadAlarms re-reads the alarm store after an external change.
func (e *Engine) ReloadAlarms(ctx context.Context) {
	if e.status != StatusRunning || e.alarmStore == nil {
		return
	}

	e.alarms = e.alarmStore.Load(ctx)

	logger.DebugKV(ctx, "Alarms reloaded", "count", len(e.alarms))
}

// replaceAlarms persists next and makes it the in-memory list. The in-memory
// list wins even when the write fails.
func (e *Engine) replaceAlarms(ctx context.Context, next []domain.Alarm) {
	if e.alarmStore != nil {
		if err := e.alarmStore.Save(ctx, domain.CloneAlarms(next)); err != nil {
			logger.ErrorKV(ctx, "Failed to persist alarms", "error", err)
		}
	}

	e.alarms = next
}

// persistSettings saves the current settings, logging write failures.
func (e *Engine) persistSettings(ctx context.Context) {
	if e.settingsStore == nil {
		return
	}

	if err := e.settingsStore.Save(ctx, e.state.Settings); err != nil {
		logger.ErrorKV(ctx, "Failed to persist settings", "error", err)
	}
}
