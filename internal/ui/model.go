package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/fliptime/internal/config"
	domain "github.com/oshokin/fliptime/internal/domain/clock"
	"github.com/oshokin/fliptime/internal/logger"
	"github.com/oshokin/fliptime/internal/service/clock"
	"github.com/oshokin/fliptime/internal/service/watcher"
)

// TickMsg asks the model to run one clock update.
type TickMsg struct{}

// ReloadMsg reports that a record was rewritten by another process.
type ReloadMsg struct {
	Change watcher.Change
}

// mode is the screen currently shown.
type mode int

const (
	modeClock mode = iota
	modeSettings
	modeAlarms
)

// Model is the bubbletea model of the clock. It is the only caller of the engine.
type Model struct {
	ctx    context.Context //nolint:containedctx // bubbletea has no per-message context.
	engine *clock.Engine
	board  *Board
	cfg    *config.Config

	keys  keyMap
	help  help.Model
	input textinput.Model

	mode        mode
	zones       []config.Zone
	zoneCursor  int
	alarmCursor int
	status      string

	width  int
	height int
}

// NewModel creates the UI model. The engine must be built with board as its
// Presenter and Effects.
func NewModel(ctx context.Context, engine *clock.Engine, board *Board, cfg *config.Config) *Model {
	input := textinput.New()
	input.Placeholder = "HH:MM"
	input.CharLimit = 5
	input.Width = 8

	return &Model{
		ctx:    logger.WithName(ctx, "ui"),
		engine: engine,
		board:  board,
		cfg:    cfg,
		keys:   defaultKeyMap(),
		help:   help.New(),
		input:  input,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.board.handle(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case TickMsg:
		m.engine.Tick(m.ctx)
	case ReloadMsg:
		m.reload(msg.Change)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, tea.Batch(cmd, m.board.drain())
		}
	}

	return m, m.board.drain()
}

func (m *Model) reload(change watcher.Change) {
	switch change {
	case watcher.SettingsChanged:
		m.engine.ReloadSettings(m.ctx)
	case watcher.AlarmsChanged:
		m.engine.ReloadAlarms(m.ctx)
		m.clampAlarmCursor()
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	switch m.mode {
	case modeSettings:
		m.settingsKey(msg)
	case modeAlarms:
		return m.alarmsKey(msg)
	default:
		return m.clockKey(msg)
	}

	return nil
}

func (m *Model) clockKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Settings):
		m.openSettings()
	case key.Matches(msg, m.keys.Alarms):
		m.mode = modeAlarms
		m.status = ""
		m.clampAlarmCursor()
	case key.Matches(msg, m.keys.ToggleFormat):
		m.toggleFormat()
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	}

	return nil
}

func (m *Model) openSettings() {
	timezone := m.engine.Settings().Timezone

	m.mode = modeSettings
	m.status = ""
	m.zones = m.cfg.PickerZones(timezone)
	m.zoneCursor = max(0, slices.IndexFunc(m.zones, func(z config.Zone) bool {
		return z.ID == timezone
	}))
}

func (m *Model) settingsKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeClock
	case key.Matches(msg, m.keys.Up):
		if m.zoneCursor > 0 {
			m.zoneCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.zoneCursor < len(m.zones)-1 {
			m.zoneCursor++
		}
	case key.Matches(msg, m.keys.Apply):
		if len(m.zones) == 0 {
			return
		}

		zone := m.zones[m.zoneCursor]
		if err := m.engine.SetTimezone(m.ctx, zone.ID); err != nil {
			m.fail("timezone", err)

			return
		}

		m.status = "Timezone: " + zone.Name
	case key.Matches(msg, m.keys.ToggleFormat):
		m.toggleFormat()
	case key.Matches(msg, m.keys.Themes):
		themes := domain.Themes()

		index := int(msg.Runes[0] - '1')
		if index >= 0 && index < len(themes) {
			m.setTheme(themes[index])
		}
	}
}

func (m *Model) alarmsKey(msg tea.KeyMsg) tea.Cmd {
	if m.input.Focused() {
		return m.alarmInputKey(msg)
	}

	alarms := m.engine.Alarms()

	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeClock
	case key.Matches(msg, m.keys.NewAlarm):
		m.input.Reset()
		m.status = ""

		return m.input.Focus()
	case key.Matches(msg, m.keys.Up):
		if m.alarmCursor > 0 {
			m.alarmCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.alarmCursor < len(alarms)-1 {
			m.alarmCursor++
		}
	case key.Matches(msg, m.keys.ToggleAlarm):
		if len(alarms) == 0 {
			return nil
		}

		toggled, err := m.engine.ToggleAlarm(m.ctx, m.alarmCursor)
		if err != nil {
			m.fail("toggle alarm", err)

			return nil
		}

		m.status = "Alarm " + toggled.String()
	case key.Matches(msg, m.keys.DeleteAlarm):
		if len(alarms) == 0 {
			return nil
		}

		if err := m.engine.RemoveAlarm(m.ctx, m.alarmCursor); err != nil {
			m.fail("remove alarm", err)

			return nil
		}

		m.status = "Alarm " + alarms[m.alarmCursor].TimeOfDay + " removed"
		m.clampAlarmCursor()
	}

	return nil
}

func (m *Model) alarmInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.input.Blur()

		return nil
	case key.Matches(msg, m.keys.Apply):
		added, err := m.engine.AddAlarm(m.ctx, m.input.Value())
		if err != nil {
			m.fail("add alarm", err)

			return nil
		}

		m.input.Blur()
		m.input.Reset()
		m.alarmCursor = len(m.engine.Alarms()) - 1
		m.status = "Alarm " + added.TimeOfDay + " added"

		return nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return cmd
}

func (m *Model) toggleFormat() {
	format, err := m.engine.ToggleHourFormat(m.ctx)
	if err != nil {
		m.fail("hour format", err)

		return
	}

	m.status = "Format: " + format.String()
}

func (m *Model) cycleTheme() {
	themes := domain.Themes()
	current := slices.Index(themes, m.engine.Settings().Theme)

	m.setTheme(themes[(current+1)%len(themes)])
}

func (m *Model) setTheme(theme string) {
	if err := m.engine.SetTheme(m.ctx, theme); err != nil {
		m.fail("theme", err)

		return
	}

	m.status = "Theme: " + theme
}

func (m *Model) fail(action string, err error) {
	logger.WarnKV(m.ctx, "Action failed", "action", action, "error", err)

	m.status = fmt.Sprintf("%s: %v", action, err)
}

func (m *Model) clampAlarmCursor() {
	count := len(m.engine.Alarms())
	m.alarmCursor = max(0, min(m.alarmCursor, count-1))
}

// View implements tea.Model.
func (m *Model) View() string {
	theme := m.board.theme

	var body string

	switch m.mode {
	case modeSettings:
		body = m.settingsView(theme)
	case modeAlarms:
		body = m.alarmsView(theme)
	default:
		body = m.clockView(theme)
	}

	background := theme.Background
	if m.board.flashing {
		background = theme.Accent
	}

	if m.width == 0 || m.height == 0 {
		return lipgloss.NewStyle().Background(background).Render(body)
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body,
		lipgloss.WithWhitespaceBackground(background))
}

func (m *Model) clockView(theme Theme) string {
	colon := lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 1).
		Render(strings.Join([]string{" ", "██", " ", "██", " "}, "\n"))

	face := lipgloss.JoinHorizontal(lipgloss.Center,
		m.cardView(theme, domain.FieldHour), colon,
		m.cardView(theme, domain.FieldMinute), colon,
		m.cardView(theme, domain.FieldSecond))

	muted := lipgloss.NewStyle().Foreground(theme.Muted)

	return lipgloss.JoinVertical(lipgloss.Center,
		face,
		"",
		muted.Render(m.board.gregorian),
		muted.Render(m.board.lunar),
		"",
		m.statusView(theme),
		m.help.ShortHelpView(m.keys.clockHelp()))
}

// cardView draws one card: the upper rows come from the new value and the
// lower rows from the old one, split by the hinge while flipping.
func (m *Model) cardView(theme Theme, field domain.Field) string {
	c := m.board.cards[field]
	top, bottom := bigText(c.top), bigText(c.bottom)

	rows := make([]string, 0, glyphRows)
	rows = append(rows, top[0], top[1])

	if c.flipping {
		rows = append(rows, lipgloss.NewStyle().
			Foreground(theme.Hinge).
			Render(strings.Repeat("─", lipgloss.Width(top[2]))))
	} else {
		rows = append(rows, top[2])
	}

	rows = append(rows, bottom[3], bottom[4])

	return lipgloss.NewStyle().
		Background(theme.Card).
		Foreground(theme.Digit).
		Padding(1, 2).
		Render(strings.Join(rows, "\n"))
}

func (m *Model) settingsView(theme Theme) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Digit)
	muted := lipgloss.NewStyle().Foreground(theme.Muted)
	selected := lipgloss.NewStyle().Foreground(theme.Accent)
	settings := m.engine.Settings()

	lines := []string{title.Render("Timezone"), ""}

	for i, zone := range m.zones {
		line := fmt.Sprintf("  %s (%s)", zone.Name, zone.ID)
		if zone.ID == settings.Timezone {
			line += " *"
		}

		if i == m.zoneCursor {
			lines = append(lines, selected.Render("▸"+line[1:]))

			continue
		}

		lines = append(lines, muted.Render(line))
	}

	lines = append(lines,
		"",
		title.Render("Format: ")+muted.Render(settings.HourFormat.String()),
		title.Render("Theme:  ")+muted.Render(themeList(settings.Theme)),
		"",
		m.statusView(theme),
		m.help.ShortHelpView(m.keys.settingsHelp()))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func themeList(current string) string {
	themes := domain.Themes()
	labels := make([]string, 0, len(themes))

	for i, theme := range themes {
		label := fmt.Sprintf("%d %s", i+1, theme)
		if theme == current {
			label = "[" + label + "]"
		}

		labels = append(labels, label)
	}

	return strings.Join(labels, "  ")
}

func (m *Model) alarmsView(theme Theme) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Digit)
	muted := lipgloss.NewStyle().Foreground(theme.Muted)
	selected := lipgloss.NewStyle().Foreground(theme.Accent)
	alarms := m.engine.Alarms()

	lines := []string{title.Render("Alarms"), ""}

	if len(alarms) == 0 {
		lines = append(lines, muted.Render("  no alarms"))
	}

	for i, a := range alarms {
		if i == m.alarmCursor && !m.input.Focused() {
			lines = append(lines, selected.Render("▸ "+a.String()))

			continue
		}

		lines = append(lines, muted.Render("  "+a.String()))
	}

	lines = append(lines, "")

	if m.input.Focused() {
		lines = append(lines, title.Render("New: ")+m.input.View())
	}

	lines = append(lines,
		m.statusView(theme),
		m.help.ShortHelpView(m.keys.alarmsHelp()))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) statusView(theme Theme) string {
	return lipgloss.NewStyle().Foreground(theme.Accent).Render(m.status)
}
