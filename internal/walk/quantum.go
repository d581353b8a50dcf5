package walk

import (
	"fmt"
	"math/rand/v2"

	"github.com/TheMathDoctor/random-walks/internal/quantum"
)

// QuantumConfig holds parameters for the coined quantum walk.
type QuantumConfig struct {
	// PositionQubits is the width of the position register; the walk
	// runs on a cycle of 2^PositionQubits nodes.
	PositionQubits int

	// Steps is the number of coin-then-shift applications.
	Steps int

	// Shots is the number of position measurements sampled from the
	// final state.
	Shots int

	// Coin selects the coin operator. Empty means CoinHadamard.
	Coin Coin

	// CoinState selects the initial coin state. Empty means
	// CoinStateSymmetric.
	CoinState CoinState
}

// DefaultQuantumConfig returns the parameters used by the standard
// comparison, mirroring DefaultClassicalConfig.
func DefaultQuantumConfig() QuantumConfig {
	return QuantumConfig{
		PositionQubits: 5,
		Steps:          40,
		Shots:          1024,
		Coin:           CoinHadamard,
		CoinState:      CoinStateSymmetric,
	}
}

// Validate checks the configuration and fills documented defaults.
func (c *QuantumConfig) Validate() error {
	if c.PositionQubits <= 0 {
		return fmt.Errorf("walk: position qubits must be positive, got %d", c.PositionQubits)
	}
	if c.Steps < 0 {
		return fmt.Errorf("walk: steps must be non-negative, got %d", c.Steps)
	}
	if c.Shots <= 0 {
		return fmt.Errorf("walk: shots must be positive, got %d", c.Shots)
	}
	if c.Coin == "" {
		c.Coin = CoinHadamard
	}
	if !c.Coin.Valid() {
		return fmt.Errorf("walk: unknown coin %q", string(c.Coin))
	}
	if c.CoinState == "" {
		c.CoinState = CoinStateSymmetric
	}
	if !c.CoinState.Valid() {
		return fmt.Errorf("walk: unknown coin state %q", string(c.CoinState))
	}
	return nil
}

// BuildCircuit assembles the walk circuit: position qubits 0..n-1
// (initialized to the center node), the coin on qubit n, the coin
// state preparation, then Steps applications of the step operator
// S · (C ⊗ I).
func BuildCircuit(cfg QuantumConfig) (*quantum.Circuit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := cfg.PositionQubits
	nodes := 1 << n
	c := quantum.NewCircuit(n + 1)
	c.SetInitialBasis(nodes / 2) // coin bit 0, position at center

	// Coin state preparation on qubit n.
	alpha, beta, err := cfg.CoinState.Amplitudes()
	if err != nil {
		return nil, err
	}
	switch {
	case alpha == 1:
		// |0>: nothing to do
	case beta == 1:
		c.X(n)
	default:
		prep, err := coinPrep(alpha, beta)
		if err != nil {
			return nil, err
		}
		c.Single(prep, n)
	}

	coin, err := cfg.Coin.Matrix()
	if err != nil {
		return nil, err
	}
	step, err := StepOperator(n, coin)
	if err != nil {
		return nil, err
	}
	for i := 0; i < cfg.Steps; i++ {
		c.Unitary(step)
	}
	return c, nil
}

// RunQuantum builds and runs the walk circuit, then samples the
// position register Shots times, discarding the coin qubit.
func RunQuantum(cfg QuantumConfig, rng *rand.Rand) (*Distribution, error) {
	circuit, err := BuildCircuit(cfg)
	if err != nil {
		return nil, err
	}
	state, err := circuit.Run()
	if err != nil {
		return nil, err
	}

	counts, err := state.SampleRegister(rng, cfg.Shots, 0, cfg.PositionQubits)
	if err != nil {
		return nil, err
	}

	dist := NewDistribution(1 << cfg.PositionQubits)
	dist.Counts = counts
	return dist, nil
}
