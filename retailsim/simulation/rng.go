package simulation

import (
	"math"
	"math/rand"
	"sort"
)

// sampler wraps a single seeded random source. Every stochastic draw of a
// run goes through one sampler so that the draw sequence, and therefore the
// whole dataset, is a pure function of the seed and the configuration.
type sampler struct {
	r *rand.Rand
}

func newSampler(seed int64) *sampler {
	return &sampler{r: rand.New(rand.NewSource(seed))}
}

func (s *sampler) float() float64 {
	return s.r.Float64()
}

func (s *sampler) exp() float64 {
	return s.r.ExpFloat64()
}

// uniform draws from [rng.Min, rng.Max).
func (s *sampler) uniform(rng Range) float64 {
	return rng.Min + s.r.Float64()*rng.Width()
}

func (s *sampler) normal(mean, stdev float64) float64 {
	return mean + s.r.NormFloat64()*stdev
}

// lognormalInt draws a lognormal value and clamps it to [lo, hi]. Used for
// basket quantities, which are small positive integers with a long tail.
func (s *sampler) lognormalInt(mu, sigma float64, lo, hi int) int {
	v := int(math.Exp(mu + sigma*s.r.NormFloat64()))
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// intBetween draws an integer from [lo, hi] inclusive.
func (s *sampler) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo+1)
}

// pickString rolls a weighted categorical outcome.
func (s *sampler) pickString(choices []weightedString) string {
	total := 0
	for _, c := range choices {
		total += c.Weight
	}
	roll := s.r.Intn(total)
	current := 0
	for _, c := range choices {
		current += c.Weight
		if roll < current {
			return c.Value
		}
	}
	return choices[len(choices)-1].Value
}

// pickPct rolls a weighted discount percentage.
func (s *sampler) pickPct(choices []weightedPct) float64 {
	total := 0
	for _, c := range choices {
		total += c.Weight
	}
	roll := s.r.Intn(total)
	current := 0
	for _, c := range choices {
		current += c.Weight
		if roll < current {
			return c.Pct
		}
	}
	return choices[len(choices)-1].Pct
}

// cumulativeWeights precomputes the prefix sums used by pickIndex, so that
// frequency-weighted sampling over a large population is a binary search
// rather than a linear walk per draw.
func cumulativeWeights(weights []float64) []float64 {
	cum := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		total += w
		cum[i] = total
	}
	return cum
}

// pickIndex draws an index proportionally to the precomputed cumulative
// weights.
func (s *sampler) pickIndex(cum []float64) int {
	total := cum[len(cum)-1]
	roll := s.r.Float64() * total
	idx := sort.SearchFloat64s(cum, roll)
	if idx >= len(cum) {
		idx = len(cum) - 1
	}
	return idx
}

// round2 rounds monetary values to two decimals before they enter a row.
// Derived fields (total cost, margin) are computed from the rounded inputs
// and never re-rounded, so the accounting identities stay exact.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampFloat(v float64, rng Range) float64 {
	if v < rng.Min {
		return rng.Min
	}
	if v > rng.Max {
		return rng.Max
	}
	return v
}
