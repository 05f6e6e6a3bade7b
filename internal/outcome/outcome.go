// Package outcome classifies the joint decisions of a prisoner's-dilemma match
// into per-player outcomes and scores them in years of imprisonment.
//
// A decision of true means the prisoner confessed (defected); false means the
// prisoner stayed silent (cooperated). Lower years are better.
package outcome

import "github.com/google/uuid"

// Personal is the outcome of a single match from one player's point of view
type Personal uint8

const (
	// Unknown is the zero value and the reset signal given to strategies
	Unknown Personal = iota
	// BothSilent neither player defected
	BothSilent
	// SellOut the player defected, the opponent didn't
	SellOut
	// SoldOut the opponent defected, the player didn't
	SoldOut
	// Sloppy both players defected
	Sloppy
)

// Years of imprisonment for each outcome
const (
	SellOutYears    = 0
	BothSilentYears = 1
	SloppyYears     = 5
	SoldOutYears    = 10
)

// String returns the string representation of an outcome
func (p Personal) String() string {
	switch p {
	case BothSilent:
		return "both-silent"
	case SellOut:
		return "sell-out"
	case SoldOut:
		return "sold-out"
	case Sloppy:
		return "sloppy"
	default:
		return "unknown"
	}
}

// PlayerDefected reports whether the player confessed in this outcome
func (p Personal) PlayerDefected() bool {
	return p == SellOut || p == Sloppy
}

// OpponentDefected reports whether the opponent confessed in this outcome
func (p Personal) OpponentDefected() bool {
	return p == SoldOut || p == Sloppy
}

// Years returns the sentence attached to the outcome. Unknown carries no sentence.
func (p Personal) Years() int {
	switch p {
	case BothSilent:
		return BothSilentYears
	case SellOut:
		return SellOutYears
	case SoldOut:
		return SoldOutYears
	case Sloppy:
		return SloppyYears
	default:
		return 0
	}
}

// Classify maps a player's decision and the opponent's decision to the
// player's outcome. Apply it twice with the arguments swapped to get both sides.
func Classify(own, opponent bool) Personal {
	if own {
		if opponent {
			return Sloppy
		}
		return SellOut
	}
	if opponent {
		return SoldOut
	}
	return BothSilent
}

// Match is the immutable result of one match between two players
type Match struct {
	results map[uuid.UUID]Personal
}

// NewMatch classifies both decisions and keys each outcome by its player.
// Passing the same identity twice yields a malformed match.
func NewMatch(left, right uuid.UUID, leftDefected, rightDefected bool) Match {
	results := make(map[uuid.UUID]Personal, 2)
	results[left] = Classify(leftDefected, rightDefected)
	results[right] = Classify(rightDefected, leftDefected)
	return Match{results: results}
}

// Valid reports whether the match holds exactly two players and id is one of them
func (m Match) Valid(id uuid.UUID) bool {
	if len(m.results) != 2 {
		return false
	}
	_, ok := m.results[id]
	return ok
}

// For returns the outcome recorded for id
func (m Match) For(id uuid.UUID) (Personal, bool) {
	p, ok := m.results[id]
	return p, ok
}

// Opponent returns the other identity in the match
func (m Match) Opponent(id uuid.UUID) (uuid.UUID, bool) {
	if !m.Valid(id) {
		return uuid.Nil, false
	}
	for other := range m.results {
		if other != id {
			return other, true
		}
	}
	return uuid.Nil, false
}
