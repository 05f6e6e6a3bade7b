// Package strategy implements the decision rules prisoners follow.
//
// A Strategy is asked once per match whether to confess, given the outcome of
// its previous match against the same opponent. outcome.Unknown means there is
// no usable history: either the first contact or the start of a new round.
// Strategies with memory must forget everything when they see it.
//
// Strategies are not safe for concurrent use and must never be shared between
// prisoners; New always returns a fresh instance.
package strategy

import (
	"github.com/lox/dilemma/internal/outcome"
)

// Strategy decides whether a prisoner confesses (true) or stays silent (false)
type Strategy interface {
	Decide(last outcome.Personal) bool
	Name() string
}

// RandSource interface for dependency injection of randomness.
// *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}
