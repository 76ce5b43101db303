package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	domain "github.com/oshokin/fliptime/internal/domain/clock"
	"github.com/oshokin/fliptime/internal/service/effects"
)

// flipDoneMsg ends the flip animation started with the same sequence number.
type flipDoneMsg struct {
	field domain.Field
	seq   int
}

// flashDoneMsg ends the alarm flash started with the same sequence number.
type flashDoneMsg struct {
	seq int
}

// card is one flip card. While flipping, the top half already shows the new
// value and the bottom half still shows the old one.
type card struct {
	top      string
	bottom   string
	flipping bool
	seq      int
}

// Board is the terminal Presenter and alarm Effects implementation.
type Board struct {
	cards     [3]card
	gregorian string
	lunar     string
	theme     Theme

	flashing bool
	flashSeq int

	flipDuration  time.Duration
	flashDuration time.Duration
	bell          *effects.Bell

	// pending collects animation timers until the model hands them to bubbletea.
	pending []tea.Cmd
}

// NewBoard creates a board with the classic theme.
func NewBoard(flipDuration, flashDuration time.Duration, bell *effects.Bell) *Board {
	return &Board{
		theme:         ThemeFor(domain.DefaultTheme),
		flipDuration:  flipDuration,
		flashDuration: flashDuration,
		bell:          bell,
	}
}

// RenderFieldTransition sets a card directly when the texts are equal and
// starts a flip otherwise. The flip ends on its own after flipDuration.
func (b *Board) RenderFieldTransition(field domain.Field, oldText, newText string) {
	c := &b.cards[field]
	c.seq++

	if oldText == newText || b.flipDuration <= 0 {
		c.top, c.bottom, c.flipping = newText, newText, false

		return
	}

	c.top, c.bottom, c.flipping = newText, oldText, true

	seq := c.seq
	b.pending = append(b.pending, tea.Tick(b.flipDuration, func(time.Time) tea.Msg {
		return flipDoneMsg{field: field, seq: seq}
	}))
}

// RenderDateLabels replaces both date lines.
func (b *Board) RenderDateLabels(gregorian, lunar string) {
	b.gregorian, b.lunar = gregorian, lunar
}

// SetTheme switches the color scheme.
func (b *Board) SetTheme(theme string) {
	b.theme = ThemeFor(theme)
}

// PlayTone rings the terminal bell.
func (b *Board) PlayTone() {
	b.bell.PlayTone()
}

// FlashBackground paints the screen in the accent color for flashDuration.
func (b *Board) FlashBackground() {
	b.flashSeq++
	b.flashing = true

	seq := b.flashSeq
	b.pending = append(b.pending, tea.Tick(b.flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	}))
}

// handle applies animation-end messages; stale ones are ignored.
func (b *Board) handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case flipDoneMsg:
		c := &b.cards[msg.field]
		if c.seq == msg.seq {
			c.bottom, c.flipping = c.top, false
		}

		return true
	case flashDoneMsg:
		if b.flashSeq == msg.seq {
			b.flashing = false
		}

		return true
	default:
		return false
	}
}

// drain returns the queued animation timers as one command.
func (b *Board) drain() tea.Cmd {
	if len(b.pending) == 0 {
		return nil
	}

	cmds := b.pending
	b.pending = nil

	return tea.Batch(cmds...)
}
