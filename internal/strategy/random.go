package strategy

import (
	"github.com/charmbracelet/log"
	"github.com/lox/dilemma/internal/outcome"
)

// RandomChoice flips a coin every match and ignores history
type RandomChoice struct {
	rng    RandSource
	logger *log.Logger
}

// NewRandomChoice creates a new RandomChoice instance
func NewRandomChoice(rng RandSource, logger *log.Logger) *RandomChoice {
	return &RandomChoice{rng: rng, logger: logger}
}

func (r *RandomChoice) Decide(outcome.Personal) bool {
	confess := r.rng.IntN(2) == 0
	r.logger.Debug("coin flip", "confess", confess)
	return confess
}

func (*RandomChoice) Name() string { return RandomChoiceName }
