package alarm

import (
	"context"

	domain "github.com/oshokin/fliptime/internal/domain/clock"
	"github.com/oshokin/fliptime/internal/logger"
)

// Effects are the fire-and-forget hooks run for each fired alarm.
type Effects interface {
	// PlayTone starts a short audible tone.
	PlayTone()
	// FlashBackground briefly highlights the display.
	FlashBackground()
}

// Evaluate returns the enabled alarms set for hourMinute, or nothing unless second is 0.
// Duplicate entries are returned once each.
func Evaluate(second int, hourMinute string, alarms []domain.Alarm) []domain.Alarm {
	if second != 0 {
		return nil
	}

	var fired []domain.Alarm

	for _, a := range alarms {
		if a.Enabled && a.TimeOfDay == hourMinute {
			fired = append(fired, a)
		}
	}

	return fired
}

// Evaluator runs Evaluate and triggers Effects for every fired alarm.
type Evaluator struct {
	// effects receives one PlayTone and one FlashBackground per fired alarm.
	effects Effects
}

// NewEvaluator creates an Evaluator; nil effects make firing silent.
func NewEvaluator(effects Effects) *Evaluator {
	return &Evaluator{effects: effects}
}

// Fire evaluates alarms and triggers the effects of every match.
func (e *Evaluator) Fire(ctx context.Context, second int, hourMinute string, alarms []domain.Alarm) []domain.Alarm {
	fired := Evaluate(second, hourMinute, alarms)
	if len(fired) == 0 {
		return nil
	}

	logger.InfoKV(ctx, "Alarm fired", "time", hourMinute, "count", len(fired))

	if e.effects == nil {
		return fired
	}

	for range fired {
		e.effects.PlayTone()
		e.effects.FlashBackground()
	}

	return fired
}
