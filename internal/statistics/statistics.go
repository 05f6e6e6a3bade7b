package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/dilemma/internal/outcome"
)

// OutcomeStats tracks statistics for a single personal outcome
type OutcomeStats struct {
	Matches int
	Years   int
}

// Statistics tracks the sentences a prisoner collected over a tournament
type Statistics struct {
	Matches   int
	SumYears  float64
	SumYears2 float64   // Sum of squares for variance calculation
	Values    []float64 // Store all values for median/percentile calculation

	// Per-outcome breakdown, indexed by outcome.Personal
	Outcomes [5]OutcomeStats
	AllYears int // Total years for ledger check
}

// Mean returns the mean years per match
func (s *Statistics) Mean() float64 {
	if s.Matches == 0 {
		return 0
	}
	return s.SumYears / float64(s.Matches)
}

// Variance returns the sample variance of years per match
func (s *Statistics) Variance() float64 {
	if s.Matches < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumYears2 - float64(s.Matches)*mean*mean) / float64(s.Matches-1)
}

// StdDev returns the sample standard deviation of years per match
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Matches == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Matches))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add records the outcome of one match. Unknown is not a match result and is ignored.
func (s *Statistics) Add(o outcome.Personal) {
	if o == outcome.Unknown || int(o) >= len(s.Outcomes) {
		return
	}

	years := o.Years()
	value := float64(years)
	s.Matches++
	s.SumYears += value
	s.SumYears2 += value * value
	s.Values = append(s.Values, value)

	s.Outcomes[o].Matches++
	s.Outcomes[o].Years += years
	s.AllYears += years
}

// Median returns the median years per match
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// IsLedgerBalanced checks the per-outcome years add up to the total
func (s *Statistics) IsLedgerBalanced() bool {
	sum := 0
	for _, os := range s.Outcomes {
		sum += os.Years
	}
	return sum == s.AllYears && math.Abs(s.SumYears-float64(s.AllYears)) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllYears=%d, SumYears=%.6f", s.AllYears, s.SumYears)
	}

	if s.Matches <= 0 {
		return fmt.Errorf("invalid matches count: %d", s.Matches)
	}

	if len(s.Values) != s.Matches {
		return fmt.Errorf("values array length (%d) does not match matches count (%d)",
			len(s.Values), s.Matches)
	}

	if s.Outcomes[outcome.Unknown].Matches != 0 {
		return fmt.Errorf("unknown outcome recorded %d times", s.Outcomes[outcome.Unknown].Matches)
	}

	total := 0
	for o, os := range s.Outcomes {
		total += os.Matches
		if want := os.Matches * outcome.Personal(o).Years(); os.Years != want {
			return fmt.Errorf("%s: %d years over %d matches, expected %d",
				outcome.Personal(o), os.Years, os.Matches, want)
		}
	}
	if total != s.Matches {
		return fmt.Errorf("outcome matches total (%d) does not match total matches (%d)", total, s.Matches)
	}

	return nil
}
