package strategy

import (
	"github.com/charmbracelet/log"
	"github.com/lox/dilemma/internal/outcome"
)

// GrudgeHolder stays silent until the opponent defects once, then confesses
// for the rest of the round.
type GrudgeHolder struct {
	betrayed bool
	logger   *log.Logger
}

// NewGrudgeHolder creates a new GrudgeHolder instance
func NewGrudgeHolder(logger *log.Logger) *GrudgeHolder {
	return &GrudgeHolder{logger: logger}
}

func (g *GrudgeHolder) Decide(last outcome.Personal) bool {
	if last == outcome.Unknown {
		g.betrayed = false
		return false
	}

	if !g.betrayed && last.OpponentDefected() {
		g.logger.Debug("grudge triggered", "last", last)
		g.betrayed = true
	}
	return g.betrayed
}

func (*GrudgeHolder) Name() string { return GrudgeHolderName }
