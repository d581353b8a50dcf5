package simulation

import (
	"github.com/TheMathDoctor/random-walks/internal/store"
	"github.com/TheMathDoctor/random-walks/internal/walk"
)

// Scenario defines a complete comparison experiment: matched classical
// and quantum walks run over a schedule of step counts with shared
// parameters.
type Scenario struct {
	Name           string
	PositionQubits int
	StepSchedule   []int // one experiment per entry
	Shots          int
	Seed           uint64

	// Coin and CoinState select the quantum coin. Empty values use the
	// walk package defaults (hadamard, symmetric).
	Coin      walk.Coin
	CoinState walk.CoinState

	// Bias is the classical up-step probability. 0 means fair.
	Bias float64

	// SkipClassical and SkipQuantum drop one side of the comparison for
	// scenarios that only probe a single walk.
	SkipClassical bool
	SkipQuantum   bool
}

// ExperimentResult captures one step count's pair of runs. A skipped
// side is nil.
type ExperimentResult struct {
	Steps     int
	Classical *store.Run
	Quantum   *store.Run
}

// SimulationResult captures all experiments and the store they were
// persisted to.
type SimulationResult struct {
	Experiments []ExperimentResult
	Store       *store.SQLiteRunStore
}
