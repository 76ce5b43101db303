package effects

import (
	"io"
	"sync"
)

// bell is the ASCII BEL control character.
const bell = "\a"

// Bell plays the alarm tone by ringing the terminal bell.
type Bell struct {
	// w is the terminal the bell character is written to.
	w io.Writer
	// mu serializes writes from concurrent alarms.
	mu sync.Mutex
}

// NewBell returns a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// PlayTone rings the bell once. Write errors are ignored.
func (b *Bell) PlayTone() {
	if b == nil || b.w == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	_, _ = io.WriteString(b.w, bell)
}
