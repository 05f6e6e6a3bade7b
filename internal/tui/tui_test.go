package tui

import (
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel() (*Model, *bool) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	cancelled := false
	m := NewModel(func() { cancelled = true }, logger)
	return m, &cancelled
}

func TestModelProgress(t *testing.T) {
	m, _ := newTestModel()

	assert.Zero(t, m.Percent())

	_, cmd := m.Update(RoundMsg{Done: 3, Total: 30})
	assert.NotNil(t, cmd, "progress bar animates")
	assert.InDelta(t, 0.1, m.Percent(), 1e-9)
	assert.Contains(t, m.View(), "Round 3/30")
	assert.False(t, m.Finished())
}

func TestModelDone(t *testing.T) {
	m, cancelled := newTestModel()

	m.Update(RoundMsg{Done: 30, Total: 30})
	m.Update(DoneMsg{Scoreboard: "1  Lucifer  90"})

	require.True(t, m.Finished())
	view := m.View()
	assert.Contains(t, view, "Finished 30 rounds")
	assert.Contains(t, view, "Lucifer")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.False(t, *cancelled, "finished runs are not cancelled")

	final := m.View()
	assert.Contains(t, final, "1  Lucifer  90", "scoreboard stays on screen after quitting")
	assert.NotContains(t, final, "q to quit")
}

func TestModelStoppedEarly(t *testing.T) {
	m, _ := newTestModel()

	m.Update(RoundMsg{Done: 4, Total: 30})
	m.Update(DoneMsg{Scoreboard: "partial", Err: errors.New("context canceled")})

	assert.Contains(t, m.View(), "Stopped early: context canceled")
}

func TestModelInterrupt(t *testing.T) {
	m, cancelled := newTestModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, *cancelled)
	assert.Empty(t, m.View())
}

func TestModelWindowSize(t *testing.T) {
	m, _ := newTestModel()

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 80, m.progress.Width)
	assert.Equal(t, 98, m.board.Width)
	assert.Equal(t, 34, m.board.Height)
}
