// Package report renders tournament results for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/dilemma/internal/arena"
	"github.com/muesli/termenv"
)

// Options controls how results are rendered
type Options struct {
	Verbose bool // include the per-outcome breakdown
	Color   bool // false forces plain ASCII output
}

type styles struct {
	header lipgloss.Style
	rank   lipgloss.Style
	label  lipgloss.Style
	info   lipgloss.Style
	best   lipgloss.Style
	worst  lipgloss.Style
	footer lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		header: r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Bold(true),
		rank:   r.NewStyle().Foreground(lipgloss.Color("#626262")).Width(4).Align(lipgloss.Right),
		label:  r.NewStyle().Foreground(lipgloss.Color("#74B9FF")).Bold(true),
		info:   r.NewStyle().Foreground(lipgloss.Color("#626262")),
		best:   r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		worst:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		footer: r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")),
	}
}

// Scoreboard writes the standings, best first, followed by a summary line.
// standings must already be ordered.
func Scoreboard(w io.Writer, standings []arena.Result, summary arena.Summary, opts Options) error {
	st := newStyles(w, opts.Color)

	labelWidth, strategyWidth := len("Prisoner"), len("Strategy")
	for _, r := range standings {
		labelWidth = max(labelWidth, len(r.Label))
		strategyWidth = max(strategyWidth, len(r.Strategy))
	}

	var b strings.Builder
	header := fmt.Sprintf("%4s  %-*s  %-*s  %8s  %10s", "#", labelWidth, "Prisoner", strategyWidth, "Strategy", "Years", "Per match")
	b.WriteString(st.header.Render(header))
	b.WriteString("\n")

	for i, r := range standings {
		score := fmt.Sprintf("%8d", r.Score)
		switch {
		case len(standings) > 1 && i == 0:
			score = st.best.Render(score)
		case len(standings) > 1 && i == len(standings)-1:
			score = st.worst.Render(score)
		}

		fmt.Fprintf(&b, "%s  %s  %s  %s  %10.3f\n",
			st.rank.Render(fmt.Sprintf("%d", i+1)),
			st.label.Render(fmt.Sprintf("%-*s", labelWidth, r.Label)),
			fmt.Sprintf("%-*s", strategyWidth, r.Strategy),
			score,
			r.MeanYears)

		if opts.Verbose {
			fmt.Fprintf(&b, "      %s\n", st.info.Render(fmt.Sprintf("%s  %s", r.ID, r.Verbose)))
			fmt.Fprintf(&b, "      %s\n", st.info.Render(spread(r)))
		}
	}

	b.WriteString("\n")
	b.WriteString(st.footer.Render(fmt.Sprintf("%d prisoners, %d rounds, %d matches in %s",
		summary.Participants, summary.Rounds, summary.Matches, summary.Duration.Round(time.Millisecond))))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// spread formats the years-per-match distribution of one result
func spread(r arena.Result) string {
	return fmt.Sprintf("mean=%.3f sd=%.3f ci95=[%.3f, %.3f] median=%.1f p90=%.1f",
		r.MeanYears, r.StdDev, r.CI95Low, r.CI95High, r.Median, r.P90)
}

// List writes one "Label(id) : score" line per result in the given order,
// with the counter breakdown instead of the bare score when verbose.
func List(w io.Writer, results []arena.Result, verbose bool) error {
	for _, r := range results {
		value := fmt.Sprintf("%d", r.Score)
		if verbose {
			value = r.Verbose
		}
		if _, err := fmt.Fprintf(w, "%s(%s) : %s\n", r.Label, r.ID, value); err != nil {
			return err
		}
	}
	return nil
}
