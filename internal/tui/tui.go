// Package tui shows a running tournament: a progress bar while rounds are
// played, then the scoreboard in a scrollable pane.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// RoundMsg reports that done of total rounds have finished
type RoundMsg struct {
	Done  int
	Total int
}

// DoneMsg carries the rendered scoreboard once the run is over
type DoneMsg struct {
	Scoreboard string
	Err        error
}

// Model is the Bubble Tea model for a tournament run
type Model struct {
	logger *log.Logger
	cancel context.CancelFunc

	progress progress.Model
	spinner  spinner.Model
	board    viewport.Model

	scoreboard  string
	done, total int
	finished    bool
	err         error
	quitting    bool
	width       int
	height      int
}

// NewModel creates a model. cancel is called when the user interrupts the run.
func NewModel(cancel context.CancelFunc, logger *log.Logger) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = WarningStyle

	return &Model{
		logger:   logger.WithPrefix("tui"),
		cancel:   cancel,
		progress: progress.New(progress.WithDefaultGradient()),
		spinner:  s,
		board:    viewport.New(80, 20),
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.progress.Width = max(10, msg.Width-20)
		m.board.Width = max(20, msg.Width-2)
		m.board.Height = max(5, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			if !m.finished {
				m.logger.Debug("Interrupting run")
				m.cancel()
			}
			m.quitting = true
			return m, tea.Quit
		}
		if m.finished {
			var cmd tea.Cmd
			m.board, cmd = m.board.Update(msg)
			return m, cmd
		}
		return m, nil

	case RoundMsg:
		m.done, m.total = msg.Done, msg.Total
		return m, m.progress.SetPercent(m.Percent())

	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		m.scoreboard = msg.Scoreboard
		m.board.SetContent(msg.Scoreboard)
		m.board.GotoTop()
		return m, nil

	case progress.FrameMsg:
		model, cmd := m.progress.Update(msg)
		m.progress = model.(progress.Model)
		return m, cmd

	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Percent returns the fraction of rounds finished
func (m *Model) Percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

// Finished reports whether the scoreboard has been received
func (m *Model) Finished() bool { return m.finished }

// View renders the model. After quitting, a finished run leaves the whole
// scoreboard on screen.
func (m *Model) View() string {
	if m.quitting && !m.finished {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Prisoner's Dilemma Arena"))
	b.WriteString("\n\n")

	if !m.finished {
		fmt.Fprintf(&b, "%s Round %d/%d\n\n", m.spinner.View(), m.done, m.total)
		b.WriteString(m.progress.View())
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("ctrl+c to stop after the current round"))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("Stopped early: %v", m.err)))
	} else {
		b.WriteString(SuccessStyle.Render(fmt.Sprintf("Finished %d rounds", m.done)))
	}
	b.WriteString("\n")
	if m.quitting {
		b.WriteString(m.scoreboard)
		return b.String()
	}
	b.WriteString(BoardStyle.Render(m.board.View()))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("↑/↓ to scroll, q to quit"))
	return b.String()
}

// Reporter forwards arena progress to a running program. Send is safe to
// call from several goroutines.
type Reporter struct {
	Program *tea.Program
}

func (r Reporter) OnRoundComplete(done, total int) {
	r.Program.Send(RoundMsg{Done: done, Total: total})
}
