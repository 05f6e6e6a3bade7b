// Package participant holds a prisoner's state in the arena: its strategy, the
// last outcome against every opponent it has faced, and its sentence counters.
package participant

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lox/dilemma/internal/outcome"
	"github.com/lox/dilemma/internal/statistics"
	"github.com/lox/dilemma/internal/strategy"
)

// Counters tracks how a participant's matches ended.
// BothSilent+SellOut+SoldOut+Sloppy equals Matches once every played match
// has been recorded.
type Counters struct {
	BothSilent int
	SellOut    int
	SoldOut    int
	Sloppy     int
	Matches    int // matches played
	Blind      int // matches played without history against the opponent
}

// Recorded returns the number of match results recorded
func (c Counters) Recorded() int {
	return c.BothSilent + c.SellOut + c.SoldOut + c.Sloppy
}

// Confessed returns the number of recorded matches in which the participant defected
func (c Counters) Confessed() int {
	return c.SellOut + c.Sloppy
}

// Years returns the total sentence for the recorded outcomes
func (c Counters) Years() int {
	return c.BothSilent*outcome.BothSilentYears +
		c.SellOut*outcome.SellOutYears +
		c.SoldOut*outcome.SoldOutYears +
		c.Sloppy*outcome.SloppyYears
}

// Participant is a prisoner in the arena. It owns its strategy exclusively.
// A Participant is not safe for concurrent use.
type Participant struct {
	id       uuid.UUID
	label    string
	strategy strategy.Strategy
	history  map[uuid.UUID]outcome.Personal
	counters Counters
	stats    statistics.Statistics
}

// New creates a participant with a random identity
func New(s strategy.Strategy) *Participant {
	return NewWithID(uuid.New(), s)
}

// NewWithID creates a participant with a fixed identity
func NewWithID(id uuid.UUID, s strategy.Strategy) *Participant {
	return &Participant{
		id:       id,
		label:    s.Name(),
		strategy: s,
		history:  make(map[uuid.UUID]outcome.Personal),
	}
}

// WithLabel sets the display label, which defaults to the strategy name
func (p *Participant) WithLabel(label string) *Participant {
	if label != "" {
		p.label = label
	}
	return p
}

func (p *Participant) ID() uuid.UUID { return p.id }

func (p *Participant) Label() string { return p.label }

func (p *Participant) Strategy() string { return p.strategy.Name() }

// PlayMatch asks the strategy for a decision against opponent. History is
// bypassed when reset is set or the opponent has never been faced. Only the
// match counters change; history is updated by RecordResult.
func (p *Participant) PlayMatch(opponent uuid.UUID, reset bool) bool {
	last := outcome.Unknown
	if !reset {
		last = p.history[opponent]
	}

	p.counters.Matches++
	if last == outcome.Unknown {
		p.counters.Blind++
	}

	return p.strategy.Decide(last)
}

// RecordResult stores this participant's outcome against the opponent in m.
// Matches that do not include this participant are ignored.
func (p *Participant) RecordResult(m outcome.Match) {
	if !m.Valid(p.id) {
		return
	}
	result, _ := m.For(p.id)
	opponent, _ := m.Opponent(p.id)

	p.history[opponent] = result
	p.stats.Add(result)

	switch result {
	case outcome.BothSilent:
		p.counters.BothSilent++
	case outcome.SellOut:
		p.counters.SellOut++
	case outcome.SoldOut:
		p.counters.SoldOut++
	case outcome.Sloppy:
		p.counters.Sloppy++
	}
}

// LastOutcome returns the stored outcome of the last match against opponent
func (p *Participant) LastOutcome(opponent uuid.UUID) (outcome.Personal, bool) {
	o, ok := p.history[opponent]
	return o, ok
}

// Opponents returns the number of distinct opponents faced
func (p *Participant) Opponents() int {
	return len(p.history)
}

func (p *Participant) Counters() Counters { return p.counters }

// Statistics returns a copy of the per-match sentence statistics
func (p *Participant) Statistics() statistics.Statistics {
	s := p.stats
	s.Values = append([]float64(nil), p.stats.Values...)
	return s
}

// Score returns the total years of imprisonment. Lower is better.
func (p *Participant) Score() int {
	return p.counters.Years()
}

// ScoreVerbose returns the score with a breakdown of the counters
func (p *Participant) ScoreVerbose() string {
	c := p.counters
	return fmt.Sprintf("score=%d both_silent=%d sell_out=%d sold_out=%d sloppy=%d confessed=%d/%d matches=%d blind=%d",
		p.Score(), c.BothSilent, c.SellOut, c.SoldOut, c.Sloppy, c.Confessed(), c.Matches, c.Matches, c.Blind)
}

// String formats the participant the way results are listed: Strategy(id)
func (p *Participant) String() string {
	return fmt.Sprintf("%s(%s)", p.label, p.id)
}
