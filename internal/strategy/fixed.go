package strategy

import "github.com/lox/dilemma/internal/outcome"

// AlwaysCooperate never confesses
type AlwaysCooperate struct{}

// NewAlwaysCooperate creates a new AlwaysCooperate instance
func NewAlwaysCooperate() *AlwaysCooperate {
	return &AlwaysCooperate{}
}

func (*AlwaysCooperate) Decide(outcome.Personal) bool { return false }

func (*AlwaysCooperate) Name() string { return AlwaysCooperateName }

// AlwaysDefect always strikes a deal
type AlwaysDefect struct{}

// NewAlwaysDefect creates a new AlwaysDefect instance
func NewAlwaysDefect() *AlwaysDefect {
	return &AlwaysDefect{}
}

func (*AlwaysDefect) Decide(outcome.Personal) bool { return true }

func (*AlwaysDefect) Name() string { return AlwaysDefectName }
