package clock

import (
	"go.uber.org/zap"

	domain "github.com/oshokin/fliptime/internal/domain/clock"
	"github.com/oshokin/fliptime/internal/service/effects"
)

// LogPresenter is the headless Presenter: cards go to the debug log and date
// lines to the info log whenever they change.
type LogPresenter struct {
	log       *zap.SugaredLogger
	gregorian string
	lunar     string
}

// NewLogPresenter creates a presenter writing to log.
func NewLogPresenter(log *zap.SugaredLogger) *LogPresenter {
	return &LogPresenter{log: log}
}

// RenderFieldTransition logs a card change.
func (p *LogPresenter) RenderFieldTransition(field domain.Field, oldText, newText string) {
	p.log.Debugw("Card flipped", "field", field.String(), "from", oldText, "to", newText)
}

// RenderDateLabels logs the date lines when they differ from the last ones.
func (p *LogPresenter) RenderDateLabels(gregorian, lunar string) {
	if gregorian == p.gregorian && lunar == p.lunar {
		return
	}

	p.gregorian, p.lunar = gregorian, lunar
	p.log.Infow("Date", "gregorian", gregorian, "lunar", lunar)
}

// SetTheme logs the theme; there is nothing to restyle.
func (p *LogPresenter) SetTheme(theme string) {
	p.log.Infow("Theme applied", "theme", theme)
}

// LogEffects rings the bell and logs the flash.
type LogEffects struct {
	*effects.Bell

	log *zap.SugaredLogger
}

// NewLogEffects combines a bell with a logged flash.
func NewLogEffects(bell *effects.Bell, log *zap.SugaredLogger) *LogEffects {
	return &LogEffects{Bell: bell, log: log}
}

// FlashBackground logs the alarm flash.
func (e *LogEffects) FlashBackground() {
	e.log.Info("Alarm!")
}
