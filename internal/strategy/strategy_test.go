package strategy

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/dilemma/internal/outcome"
	"github.com/lox/dilemma/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allOutcomes = []outcome.Personal{
	outcome.Unknown,
	outcome.BothSilent,
	outcome.SellOut,
	outcome.SoldOut,
	outcome.Sloppy,
}

// MockRandSource for deterministic testing
type MockRandSource struct {
	values []int
	index  int
}

func NewMockRandSource(values ...int) *MockRandSource {
	return &MockRandSource{values: values}
}

func (m *MockRandSource) IntN(n int) int {
	if m.index >= len(m.values) {
		return n - 1
	}
	val := m.values[m.index] % n
	m.index++
	return val
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestAlwaysCooperate(t *testing.T) {
	s := NewAlwaysCooperate()
	for _, last := range allOutcomes {
		assert.False(t, s.Decide(last), "last=%s", last)
	}
	assert.Equal(t, "always-cooperate", s.Name())
}

func TestAlwaysDefect(t *testing.T) {
	s := NewAlwaysDefect()
	for _, last := range allOutcomes {
		assert.True(t, s.Decide(last), "last=%s", last)
	}
	assert.Equal(t, "always-defect", s.Name())
}

func TestEcho(t *testing.T) {
	s := NewEcho()
	assert.False(t, s.Decide(outcome.Unknown))
	for _, last := range allOutcomes[1:] {
		assert.Equal(t, last.OpponentDefected(), s.Decide(last), "last=%s", last)
	}
}

func TestGrudgeHolder(t *testing.T) {
	t.Run("silent until betrayed", func(t *testing.T) {
		g := NewGrudgeHolder(quietLogger())
		assert.False(t, g.Decide(outcome.Unknown))
		assert.False(t, g.Decide(outcome.BothSilent))
		assert.False(t, g.Decide(outcome.SellOut))
	})

	for _, betrayal := range []outcome.Personal{outcome.SoldOut, outcome.Sloppy} {
		t.Run("holds grudge after "+betrayal.String(), func(t *testing.T) {
			g := NewGrudgeHolder(quietLogger())
			require.False(t, g.Decide(outcome.Unknown))
			require.True(t, g.Decide(betrayal))

			for _, last := range []outcome.Personal{outcome.BothSilent, outcome.SellOut, outcome.BothSilent} {
				assert.True(t, g.Decide(last), "last=%s", last)
			}

			// Unknown starts a new opponent sequence
			assert.False(t, g.Decide(outcome.Unknown))
			assert.False(t, g.Decide(outcome.BothSilent))
		})
	}
}

func TestRandomChoice(t *testing.T) {
	r := NewRandomChoice(NewMockRandSource(0, 1, 1, 0), quietLogger())

	assert.True(t, r.Decide(outcome.Unknown))
	assert.False(t, r.Decide(outcome.BothSilent))
	assert.False(t, r.Decide(outcome.Sloppy))
	assert.True(t, r.Decide(outcome.SoldOut))
}

func TestRandomChoiceIsRoughlyFair(t *testing.T) {
	r := NewRandomChoice(randutil.New(1), quietLogger())

	confessions := 0
	const trials = 10000
	for i := 0; i < trials; i++ {
		if r.Decide(outcome.Unknown) {
			confessions++
		}
	}
	assert.InDelta(t, trials/2, confessions, trials*0.05)
}

func TestEchoWithForgiveness(t *testing.T) {
	t.Run("silent without defection", func(t *testing.T) {
		// Any draw consumed here would show up as a forgiveness
		rng := NewMockRandSource(0, 0, 0)
		e := NewEchoWithForgiveness(rng, quietLogger())

		assert.False(t, e.Decide(outcome.Unknown))
		assert.False(t, e.Decide(outcome.BothSilent))
		assert.False(t, e.Decide(outcome.SellOut))
		assert.Equal(t, 0, rng.index, "no draws without a defection")
	})

	t.Run("retaliates unless forgiving", func(t *testing.T) {
		e := NewEchoWithForgiveness(NewMockRandSource(3, 0, 9), quietLogger())

		assert.True(t, e.Decide(outcome.SoldOut))
		assert.False(t, e.Decide(outcome.Sloppy), "draw of 0 forgives")
		assert.True(t, e.Decide(outcome.Sloppy))
	})

	t.Run("forgives about one time in ten", func(t *testing.T) {
		e := NewEchoWithForgiveness(randutil.New(99), quietLogger())

		forgiven := 0
		const trials = 20000
		for i := 0; i < trials; i++ {
			if !e.Decide(outcome.SoldOut) {
				forgiven++
			}
		}
		assert.InDelta(t, trials/10, forgiven, trials*0.02)
	})
}

func TestNew(t *testing.T) {
	rng := randutil.New(5)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := New(name, rng, quietLogger())
			require.NoError(t, err)
			assert.Equal(t, name, s.Name())
		})
	}

	t.Run("aliases", func(t *testing.T) {
		aliases := map[string]string{
			"Jesus":            AlwaysCooperateName,
			"lucifer":          AlwaysDefectName,
			"Insane":           RandomChoiceName,
			"ARMAGEDDON":       GrudgeHolderName,
			"TitForTat":        EchoName,
			"TitForTatForgive": EchoWithForgivenessName,
		}
		for alias, want := range aliases {
			s, err := New(alias, rng, nil)
			require.NoError(t, err, alias)
			assert.Equal(t, want, s.Name())
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New("tit-for-two-tats", rng, nil)
		assert.ErrorIs(t, err, ErrUnknownStrategy)
	})

	t.Run("random strategy without source", func(t *testing.T) {
		_, err := New(RandomChoiceName, nil, nil)
		assert.Error(t, err)

		s, err := New(EchoName, nil, nil)
		require.NoError(t, err)
		assert.False(t, s.Decide(outcome.Unknown))
	})

	t.Run("fresh instances", func(t *testing.T) {
		a, err := New(GrudgeHolderName, nil, nil)
		require.NoError(t, err)
		b, err := New(GrudgeHolderName, nil, nil)
		require.NoError(t, err)

		a.Decide(outcome.Unknown)
		a.Decide(outcome.SoldOut)
		b.Decide(outcome.Unknown)

		assert.True(t, a.Decide(outcome.BothSilent))
		assert.False(t, b.Decide(outcome.BothSilent))
	})
}

func TestAll(t *testing.T) {
	infos := All()
	require.Len(t, infos, 6)
	assert.Equal(t, Names()[0], infos[0].Name)

	info, ok := Lookup("titfortatforgive")
	require.True(t, ok)
	assert.True(t, info.Random)
	assert.Equal(t, EchoWithForgivenessName, info.Name)

	_, ok = Lookup("nobody")
	assert.False(t, ok)
}
