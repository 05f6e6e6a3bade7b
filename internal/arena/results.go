package arena

import (
	"sort"

	"github.com/google/uuid"
	"github.com/lox/dilemma/internal/participant"
)

// Result is one participant's standing after a run
type Result struct {
	Label     string
	Strategy  string
	ID        uuid.UUID
	Score     int
	Counters  participant.Counters
	MeanYears float64
	StdDev    float64
	CI95Low   float64 // 95% confidence interval for MeanYears
	CI95High  float64
	Median    float64
	P90       float64 // 90th percentile of years per match
	Verbose   string
}

// Results returns each participant's result in roster order. Call it once the
// run has finished.
func (a *Arena) Results() []Result {
	results := make([]Result, len(a.roster))
	for i, p := range a.roster {
		stats := p.Statistics()
		lo, hi := stats.ConfidenceInterval95()
		results[i] = Result{
			Label:     p.Label(),
			Strategy:  p.Strategy(),
			ID:        p.ID(),
			Score:     p.Score(),
			Counters:  p.Counters(),
			MeanYears: stats.Mean(),
			StdDev:    stats.StdDev(),
			CI95Low:   lo,
			CI95High:  hi,
			Median:    stats.Median(),
			P90:       stats.Percentile(0.9),
			Verbose:   p.ScoreVerbose(),
		}
	}
	return results
}

// Standings returns the results ordered best first: fewest years, ties in
// roster order.
func (a *Arena) Standings() []Result {
	results := a.Results()
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	return results
}
