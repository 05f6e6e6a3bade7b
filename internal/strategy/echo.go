package strategy

import (
	"github.com/charmbracelet/log"
	"github.com/lox/dilemma/internal/outcome"
)

// forgiveOdds is the 1-in-N chance EchoWithForgiveness lets a defection go
const forgiveOdds = 10

// Echo repeats the opponent's previous decision, starting silent
type Echo struct{}

// NewEcho creates a new Echo instance
func NewEcho() *Echo {
	return &Echo{}
}

func (*Echo) Decide(last outcome.Personal) bool {
	if last == outcome.Unknown {
		return false
	}
	return last.OpponentDefected()
}

func (*Echo) Name() string { return EchoName }

// EchoWithForgiveness behaves like Echo but occasionally answers a defection
// with silence.
type EchoWithForgiveness struct {
	rng    RandSource
	logger *log.Logger
}

// NewEchoWithForgiveness creates a new EchoWithForgiveness instance
func NewEchoWithForgiveness(rng RandSource, logger *log.Logger) *EchoWithForgiveness {
	return &EchoWithForgiveness{rng: rng, logger: logger}
}

func (e *EchoWithForgiveness) Decide(last outcome.Personal) bool {
	if last == outcome.Unknown || !last.OpponentDefected() {
		return false
	}

	if e.rng.IntN(forgiveOdds) == 0 {
		e.logger.Debug("forgave defection", "last", last)
		return false
	}
	return true
}

func (*EchoWithForgiveness) Name() string { return EchoWithForgivenessName }
