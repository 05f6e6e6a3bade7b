// Package arena schedules prisoners against each other.
//
// A round is a run of consecutive matches between one ordered pair. The first
// match of every round is played with history reset, so strategies start each
// round blind regardless of earlier rounds against the same opponent. A round
// robin plays one round for every ordered pair of distinct prisoners, which
// covers each unordered pair twice ("home and away").
//
// Rounds run sequentially by default. With more than one worker, rounds run
// concurrently; a round holds both of its participants for its whole length,
// so a participant is only ever driven by one round at a time.
package arena

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/dilemma/internal/outcome"
	"github.com/lox/dilemma/internal/participant"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidMatchCount is returned when a round robin is asked for fewer than one match per round
var ErrInvalidMatchCount = errors.New("matches per round must be at least 1")

// ErrSelfPairing is returned when a participant is asked to play itself
var ErrSelfPairing = errors.New("participant cannot play itself")

// Reporter receives progress as rounds finish. With more than one worker it
// is called from several goroutines.
type Reporter interface {
	OnRoundComplete(done, total int)
}

// ReporterFunc adapts a function to the Reporter interface
type ReporterFunc func(done, total int)

func (f ReporterFunc) OnRoundComplete(done, total int) { f(done, total) }

// Option configures an Arena
type Option func(*Arena)

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(a *Arena) { a.logger = logger }
}

// WithClock sets the clock used to time runs
func WithClock(clock quartz.Clock) Option {
	return func(a *Arena) { a.clock = clock }
}

// WithWorkers sets how many rounds may run at once
func WithWorkers(n int) Option {
	return func(a *Arena) { a.workers = n }
}

// WithReporter sets the progress reporter
func WithReporter(r Reporter) Option {
	return func(a *Arena) { a.reporter = r }
}

// Summary describes a completed (or interrupted) round robin
type Summary struct {
	Participants int
	Rounds       int
	Matches      int
	Duration     time.Duration
}

// Arena owns a fixed roster of participants and drives their matches
type Arena struct {
	roster   []*participant.Participant
	locks    []sync.Mutex
	logger   *log.Logger
	clock    quartz.Clock
	workers  int
	reporter Reporter

	matches atomic.Int64
}

// New creates an arena for the roster. The roster must not change afterwards.
func New(roster []*participant.Participant, opts ...Option) *Arena {
	a := &Arena{
		roster:  append([]*participant.Participant(nil), roster...),
		locks:   make([]sync.Mutex, len(roster)),
		workers: 1,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = log.New(io.Discard)
	}
	a.logger = a.logger.WithPrefix("arena")
	if a.clock == nil {
		a.clock = quartz.NewReal()
	}
	if a.workers < 1 {
		a.workers = 1
	}
	return a
}

// Participants returns the roster in order
func (a *Arena) Participants() []*participant.Participant {
	return append([]*participant.Participant(nil), a.roster...)
}

// MatchesPlayed returns the number of matches played so far
func (a *Arena) MatchesPlayed() int64 {
	return a.matches.Load()
}

// ExpectedMatches returns the number of matches a round robin plays
func ExpectedMatches(participants, matchesPerRound int) int {
	return matchesPerRound * participants * (participants - 1)
}

// PlayMatch plays one match: both participants decide from the history they
// already hold, then both receive the same classified outcome.
func (a *Arena) PlayMatch(left, right *participant.Participant, reset bool) (outcome.Match, error) {
	if left.ID() == right.ID() {
		return outcome.Match{}, fmt.Errorf("%w: %s", ErrSelfPairing, left)
	}

	leftConfessed := left.PlayMatch(right.ID(), reset)
	rightConfessed := right.PlayMatch(left.ID(), reset)

	result := outcome.NewMatch(left.ID(), right.ID(), leftConfessed, rightConfessed)
	left.RecordResult(result)
	right.RecordResult(result)

	a.matches.Add(1)
	return result, nil
}

// PlayRound plays matchCount matches between left and right, resetting
// history on the first. The reset match is always played.
func (a *Arena) PlayRound(left, right *participant.Participant, matchCount int) error {
	if _, err := a.PlayMatch(left, right, true); err != nil {
		return err
	}
	for i := 1; i < matchCount; i++ {
		if _, err := a.PlayMatch(left, right, false); err != nil {
			return err
		}
	}
	return nil
}

type pairing struct {
	player, opponent int
}

func (a *Arena) pairings() []pairing {
	var pairs []pairing
	for i := range a.roster {
		for j := range a.roster {
			if i != j {
				pairs = append(pairs, pairing{player: i, opponent: j})
			}
		}
	}
	return pairs
}

// RoundRobin plays a round of matchesPerRound matches for every ordered pair
// of distinct participants. When ctx is cancelled the run stops between
// rounds and the partial summary is returned with the context's error.
func (a *Arena) RoundRobin(ctx context.Context, matchesPerRound int) (Summary, error) {
	if matchesPerRound < 1 {
		return Summary{}, fmt.Errorf("%w: got %d", ErrInvalidMatchCount, matchesPerRound)
	}

	pairs := a.pairings()
	start := a.clock.Now()
	startMatches := a.matches.Load()

	a.logger.Info("Starting round robin",
		"participants", len(a.roster),
		"rounds", len(pairs),
		"matches_per_round", matchesPerRound,
		"workers", a.workers)

	var (
		done atomic.Int64
		err  error
	)
	round := func(p pairing) error {
		if err := a.lockedRound(p, matchesPerRound); err != nil {
			return err
		}
		n := int(done.Add(1))
		if a.reporter != nil {
			a.reporter.OnRoundComplete(n, len(pairs))
		}
		return nil
	}

	if a.workers == 1 {
		for _, p := range pairs {
			if err = ctx.Err(); err != nil {
				break
			}
			if err = round(p); err != nil {
				break
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.workers)
		for _, p := range pairs {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return round(p)
			})
		}
		err = g.Wait()
		if err == nil {
			err = ctx.Err()
		}
	}

	summary := Summary{
		Participants: len(a.roster),
		Rounds:       int(done.Load()),
		Matches:      int(a.matches.Load() - startMatches),
		Duration:     a.clock.Since(start),
	}

	if verr := a.Validate(); verr != nil {
		a.logger.Warn("Participant ledgers out of balance", "error", verr)
	}

	if err != nil {
		a.logger.Warn("Round robin interrupted", "rounds", summary.Rounds, "of", len(pairs), "error", err)
		return summary, err
	}

	a.logger.Info("Round robin complete", "matches", summary.Matches, "duration", summary.Duration)
	return summary, nil
}

// Validate checks every participant's counters and statistics agree with
// the matches it played. It must not be called while a run is in progress.
func (a *Arena) Validate() error {
	var errs []error
	for _, p := range a.roster {
		c := p.Counters()
		if c.Recorded() != c.Matches {
			errs = append(errs, fmt.Errorf("%s: %d matches played, %d recorded", p, c.Matches, c.Recorded()))
			continue
		}
		if c.Matches == 0 {
			continue
		}
		stats := p.Statistics()
		if stats.Matches != c.Matches {
			errs = append(errs, fmt.Errorf("%s: statistics hold %d matches, counters %d", p, stats.Matches, c.Matches))
			continue
		}
		if err := stats.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

// lockedRound holds both participants for the whole round, lower roster
// index first.
func (a *Arena) lockedRound(p pairing, matchCount int) error {
	first, second := p.player, p.opponent
	if first > second {
		first, second = second, first
	}
	a.locks[first].Lock()
	defer a.locks[first].Unlock()
	a.locks[second].Lock()
	defer a.locks[second].Unlock()

	left, right := a.roster[p.player], a.roster[p.opponent]
	a.logger.Debug("Playing round", "left", left, "right", right, "matches", matchCount)
	return a.PlayRound(left, right, matchCount)
}
