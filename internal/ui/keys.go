package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding of the clock UI.
type keyMap struct {
	Quit         key.Binding
	Settings     key.Binding
	Alarms       key.Binding
	ToggleFormat key.Binding
	CycleTheme   key.Binding
	Up           key.Binding
	Down         key.Binding
	Apply        key.Binding
	Back         key.Binding
	Themes       key.Binding
	NewAlarm     key.Binding
	ToggleAlarm  key.Binding
	DeleteAlarm  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Alarms: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "alarms"),
		),
		ToggleFormat: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "12/24h"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Themes: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "theme"),
		),
		NewAlarm: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new alarm"),
		),
		ToggleAlarm: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "on/off"),
		),
		DeleteAlarm: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
	}
}

// clockHelp lists the bindings shown under the clock face.
func (k keyMap) clockHelp() []key.Binding {
	return []key.Binding{k.Settings, k.Alarms, k.ToggleFormat, k.CycleTheme, k.Quit}
}

func (k keyMap) settingsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Apply, k.ToggleFormat, k.Themes, k.Back}
}

func (k keyMap) alarmsHelp() []key.Binding {
	return []key.Binding{k.NewAlarm, k.Up, k.Down, k.ToggleAlarm, k.DeleteAlarm, k.Back}
}
