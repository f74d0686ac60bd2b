package simulation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	require.Equal(t, 1.23, round2(1.2345))
	require.Equal(t, 1.24, round2(1.239))
	require.Equal(t, 0.0, round2(0.0049))
	require.Equal(t, -2.5, round2(-2.4999))
	require.Equal(t, 100.0, round2(100))
}

func TestUniformStaysInRange(t *testing.T) {
	s := newSampler(7)
	rng := Range{2.5, 9.5}
	for i := 0; i < 1000; i++ {
		v := s.uniform(rng)
		require.GreaterOrEqual(t, v, rng.Min)
		require.Less(t, v, rng.Max)
	}
}

func TestLognormalIntClamps(t *testing.T) {
	s := newSampler(7)
	for i := 0; i < 1000; i++ {
		v := s.lognormalInt(1.2, 0.6, 1, 10)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 10)
	}
}

func TestIntBetweenInclusive(t *testing.T) {
	s := newSampler(7)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := s.intBetween(3, 5)
		require.GreaterOrEqual(t, v, 3)
		require.LessOrEqual(t, v, 5)
		seen[v] = true
	}
	require.True(t, seen[3] && seen[4] && seen[5])

	require.Equal(t, 4, s.intBetween(4, 4))
}

func TestPickStringRespectsWeights(t *testing.T) {
	s := newSampler(7)
	choices := []weightedString{
		{"heavy", 90},
		{"light", 10},
	}
	counts := make(map[string]int)
	for i := 0; i < 10000; i++ {
		counts[s.pickString(choices)]++
	}
	require.Greater(t, counts["heavy"], counts["light"])
	require.InDelta(t, 9000, counts["heavy"], 300)
}

func TestPickIndexFollowsCumulativeWeights(t *testing.T) {
	s := newSampler(7)
	cum := cumulativeWeights([]float64{1, 0, 3})
	require.Equal(t, []float64{1, 1, 4}, cum)

	counts := make([]int, 3)
	for i := 0; i < 10000; i++ {
		counts[s.pickIndex(cum)]++
	}
	// Zero-weight entries never win; the rest split proportionally.
	require.Zero(t, counts[1])
	require.InDelta(t, 2500, counts[0], 250)
	require.InDelta(t, 7500, counts[2], 250)
}

func TestClampFloat(t *testing.T) {
	rng := Range{1, 5}
	require.Equal(t, 1.0, clampFloat(0.2, rng))
	require.Equal(t, 5.0, clampFloat(7.3, rng))
	require.Equal(t, 3.3, clampFloat(3.3, rng))
}

func TestSamplerIsReproducible(t *testing.T) {
	a := newSampler(99)
	b := newSampler(99)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.float(), b.float())
	}
}
