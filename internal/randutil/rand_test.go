package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func draws(n int, next func() uint64) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = next()
	}
	return out
}

func TestNewDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	assert.Equal(t, draws(16, a.Uint64), draws(16, b.Uint64))

	c := New(43)
	assert.NotEqual(t, draws(16, New(42).Uint64), draws(16, c.Uint64))
}

func TestStreamIndependent(t *testing.T) {
	assert.Equal(t, draws(16, Stream(7, 3).Uint64), draws(16, Stream(7, 3).Uint64))
	assert.NotEqual(t, draws(16, Stream(7, 0).Uint64), draws(16, Stream(7, 1).Uint64))
	assert.NotEqual(t, draws(16, Stream(7, 0).Uint64), draws(16, Stream(8, 0).Uint64))
}
