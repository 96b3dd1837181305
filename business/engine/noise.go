package engine

import "math/rand"

// Noise injects optional Gaussian jitter into raw scores before smoothing,
// so live numbers look dynamic instead of frozen. A variation factor of zero
// disables it; the seed is injectable so tests stay deterministic.
type Noise struct {
	rng *rand.Rand
}

func NewNoise(seed int64) *Noise {
	return &Noise{rng: rand.New(rand.NewSource(seed))}
}

func (n *Noise) Apply(raw, variationFactor float64) float64 {
	if variationFactor <= 0 {
		return raw
	}
	return raw + n.rng.NormFloat64()*variationFactor
}
