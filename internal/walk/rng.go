package walk

import (
	"math/rand/v2"
	"time"
)

// NewRand builds the sampler RNG for a run. A zero seed is replaced by
// a clock-derived one; the effective seed is returned so callers can
// record it for reproducibility.
func NewRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed)), seed
}
