package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/dilemma/internal/arena"
	"github.com/lox/dilemma/internal/config"
	"github.com/lox/dilemma/internal/report"
	"github.com/lox/dilemma/internal/tui"
)

// RunCmd runs a tournament and prints the results
type RunCmd struct {
	Config  string `kong:"short='c',type='path',default='dilemma.hcl',help='HCL tournament config (defaults apply if missing)'"`
	Matches *int   `kong:"short='m',help='Matches per round (overrides config)'"`
	Seed    *int64 `kong:"help='Deterministic RNG seed (overrides config)'"`
	Workers *int   `kong:"short='w',help='Rounds to play concurrently (overrides config)'"`
	Verbose bool   `kong:"help='Show the per-outcome breakdown'"`
	List    bool   `kong:"help='Print Strategy(id) : score lines in roster order'"`
	TUI     bool   `kong:"name='tui',help='Show live progress'"`
	NoColor bool   `kong:"help='Disable colored output'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *RunCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	seed := cfg.Tournament.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", seed)
	} else {
		logger.Info("Using deterministic seed", "seed", seed)
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	var (
		a         *arena.Arena
		summary   arena.Summary
		shownLive bool
	)
	if c.TUI {
		a, summary, shownLive, err = c.runWithTUI(ctx, cancel, cfg, seed, logger)
	} else {
		a, summary, err = playTournament(ctx, cfg, seed, logger, nil)
	}
	if errors.Is(err, context.Canceled) {
		logger.Warn("Tournament interrupted, showing partial results", "rounds", summary.Rounds)
	} else if err != nil {
		return err
	}

	return c.finish(os.Stdout, a, summary, shownLive)
}

// finish writes the results unless the live view already left them on screen
func (c *RunCmd) finish(w io.Writer, a *arena.Arena, summary arena.Summary, shownLive bool) error {
	if shownLive {
		return nil
	}
	return c.writeResults(w, a, summary)
}

func (c *RunCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Matches != nil {
		cfg.Tournament.MatchesPerRound = *c.Matches
	}
	if c.Seed != nil {
		cfg.Tournament.Seed = *c.Seed
	}
	if c.Workers != nil {
		cfg.Tournament.Workers = *c.Workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *RunCmd) writeResults(w io.Writer, a *arena.Arena, summary arena.Summary) error {
	if c.List {
		return report.List(w, a.Results(), c.Verbose)
	}
	return report.Scoreboard(w, a.Standings(), summary, report.Options{
		Verbose: c.Verbose,
		Color:   !c.NoColor,
	})
}

// runWithTUI plays the tournament behind the live view. shownLive reports
// whether the view received the results before it exited.
func (c *RunCmd) runWithTUI(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, seed int64, logger *log.Logger) (*arena.Arena, arena.Summary, bool, error) {
	model := tui.NewModel(cancel, logger)
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(os.Stderr))

	type runResult struct {
		arena   *arena.Arena
		summary arena.Summary
		err     error
	}
	finished := make(chan runResult, 1)

	go func() {
		a, summary, err := playTournament(ctx, cfg, seed, logger, tui.Reporter{Program: program})
		if a != nil {
			var board bytes.Buffer
			if werr := c.writeResults(&board, a, summary); werr != nil {
				logger.Error("Failed to render scoreboard", "error", werr)
			}
			program.Send(tui.DoneMsg{Scoreboard: board.String(), Err: err})
		} else {
			program.Quit()
		}
		finished <- runResult{arena: a, summary: summary, err: err}
	}()

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		logger.Warn("Live view exited", "error", err)
	}

	result := <-finished
	return result.arena, result.summary, model.Finished(), result.err
}

// playTournament builds the roster from cfg and plays one round robin
func playTournament(ctx context.Context, cfg *config.Config, seed int64, logger *log.Logger, reporter arena.Reporter) (*arena.Arena, arena.Summary, error) {
	roster, err := cfg.BuildRoster(seed, logger)
	if err != nil {
		return nil, arena.Summary{}, err
	}

	opts := []arena.Option{
		arena.WithLogger(logger),
		arena.WithWorkers(cfg.Tournament.Workers),
	}
	if reporter != nil {
		opts = append(opts, arena.WithReporter(reporter))
	}

	a := arena.New(roster, opts...)
	summary, err := a.RoundRobin(ctx, cfg.Tournament.MatchesPerRound)
	return a, summary, err
}
