package walk

import (
	"fmt"
	"math/rand/v2"
)

// ClassicalConfig holds parameters for the classical cycle walk.
type ClassicalConfig struct {
	// PositionQubits sets the cycle size to 2^PositionQubits nodes,
	// matching the quantum walk's position register.
	PositionQubits int

	// Steps is the number of ±1 moves per shot.
	Steps int

	// Shots is the number of independent walkers sampled.
	Shots int

	// Bias is the probability of stepping up (toward higher node
	// indices). 0 means "use 0.5".
	Bias float64
}

// DefaultClassicalConfig returns the parameters used by the standard
// comparison: 5 position qubits, 40 steps, 1024 shots, fair coin.
func DefaultClassicalConfig() ClassicalConfig {
	return ClassicalConfig{
		PositionQubits: 5,
		Steps:          40,
		Shots:          1024,
	}
}

// Validate checks the configuration.
func (c ClassicalConfig) Validate() error {
	if c.PositionQubits <= 0 {
		return fmt.Errorf("walk: position qubits must be positive, got %d", c.PositionQubits)
	}
	if c.Steps < 0 {
		return fmt.Errorf("walk: steps must be non-negative, got %d", c.Steps)
	}
	if c.Shots <= 0 {
		return fmt.Errorf("walk: shots must be positive, got %d", c.Shots)
	}
	if c.Bias < 0 || c.Bias > 1 {
		return fmt.Errorf("walk: bias must be in [0, 1], got %f", c.Bias)
	}
	return nil
}

// RunClassical samples the classical random walk: every shot starts a
// walker at the center node and flips a (possibly biased) coin Steps
// times, moving ±1 around the cycle with wraparound.
func RunClassical(cfg ClassicalConfig, rng *rand.Rand) (*Distribution, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	nodes := 1 << cfg.PositionQubits
	start := nodes / 2
	bias := cfg.Bias
	if bias == 0 {
		bias = 0.5
	}

	dist := NewDistribution(nodes)
	for shot := 0; shot < cfg.Shots; shot++ {
		pos := start
		for step := 0; step < cfg.Steps; step++ {
			if rng.Float64() < bias {
				pos = (pos + 1) % nodes
			} else {
				pos = (pos - 1 + nodes) % nodes
			}
		}
		dist.Counts[pos]++
	}
	return dist, nil
}
