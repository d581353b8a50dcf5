package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/TheMathDoctor/random-walks/internal/store"
	"github.com/TheMathDoctor/random-walks/internal/walk"
)

// Runner orchestrates comparison experiments against a real run store.
type Runner struct {
	t     *testing.T
	store *store.SQLiteRunStore
}

// NewRunner creates a simulation runner with an isolated SQLite store
// and sandboxed HOME directory.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	s, err := store.NewSQLiteRunStore(tmpDir)
	if err != nil {
		t.Fatalf("NewRunner: failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return &Runner{t: t, store: s}
}

// Run executes the scenario and returns the collected results. Every
// run is persisted to the store before being returned, so assertions
// observe exactly what a reader of the store would.
func (r *Runner) Run(scenario Scenario) SimulationResult {
	r.t.Helper()
	ctx := context.Background()

	seed := scenario.Seed
	if seed == 0 {
		seed = 1
	}

	experiments := make([]ExperimentResult, len(scenario.StepSchedule))
	for i, steps := range scenario.StepSchedule {
		er := ExperimentResult{Steps: steps}

		if !scenario.SkipClassical {
			er.Classical = r.runClassical(ctx, scenario, steps, seed)
		}
		if !scenario.SkipQuantum {
			er.Quantum = r.runQuantum(ctx, scenario, steps, seed)
		}
		experiments[i] = er
	}

	return SimulationResult{
		Experiments: experiments,
		Store:       r.store,
	}
}

// runClassical samples one classical walk and persists it.
func (r *Runner) runClassical(ctx context.Context, scenario Scenario, steps int, seed uint64) *store.Run {
	r.t.Helper()

	cfg := walk.ClassicalConfig{
		PositionQubits: scenario.PositionQubits,
		Steps:          steps,
		Shots:          scenario.Shots,
		Bias:           scenario.Bias,
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	dist, err := walk.RunClassical(cfg, rng)
	if err != nil {
		r.t.Fatalf("scenario %s: RunClassical(steps=%d): %v", scenario.Name, steps, err)
	}

	run := store.Run{
		Kind:           store.KindClassical,
		PositionQubits: cfg.PositionQubits,
		Steps:          cfg.Steps,
		Shots:          cfg.Shots,
		Bias:           cfg.Bias,
		Seed:           seed,
		Distribution:   dist,
	}
	return r.persist(ctx, scenario, run)
}

// runQuantum simulates one quantum walk and persists it.
func (r *Runner) runQuantum(ctx context.Context, scenario Scenario, steps int, seed uint64) *store.Run {
	r.t.Helper()

	cfg := walk.QuantumConfig{
		PositionQubits: scenario.PositionQubits,
		Steps:          steps,
		Shots:          scenario.Shots,
		Coin:           scenario.Coin,
		CoinState:      scenario.CoinState,
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	dist, err := walk.RunQuantum(cfg, rng)
	if err != nil {
		r.t.Fatalf("scenario %s: RunQuantum(steps=%d): %v", scenario.Name, steps, err)
	}

	run := store.Run{
		Kind:           store.KindQuantum,
		PositionQubits: cfg.PositionQubits,
		Steps:          cfg.Steps,
		Shots:          cfg.Shots,
		Coin:           string(cfg.Coin),
		CoinState:      string(cfg.CoinState),
		Seed:           seed,
		Distribution:   dist,
	}
	return r.persist(ctx, scenario, run)
}

// persist saves a run and reloads it through the store, so results
// reflect the persisted record rather than the in-memory one.
func (r *Runner) persist(ctx context.Context, scenario Scenario, run store.Run) *store.Run {
	r.t.Helper()

	id, err := r.store.SaveRun(ctx, run)
	if err != nil {
		r.t.Fatalf("scenario %s: SaveRun: %v", scenario.Name, err)
	}
	saved, err := r.store.GetRun(ctx, id)
	if err != nil {
		r.t.Fatalf("scenario %s: GetRun(%s): %v", scenario.Name, id, err)
	}
	if saved == nil {
		r.t.Fatalf("scenario %s: run %s vanished after save", scenario.Name, id)
	}
	return saved
}

// FormatExperimentDebug returns a debug string for one experiment.
func FormatExperimentDebug(er ExperimentResult) string {
	s := fmt.Sprintf("Experiment steps=%d:\n", er.Steps)
	if er.Classical != nil {
		s += fmt.Sprintf("  classical: mean=%.3f stddev=%.3f\n", er.Classical.Distribution.Mean(), er.Classical.Distribution.StdDev())
	}
	if er.Quantum != nil {
		s += fmt.Sprintf("  quantum:   mean=%.3f stddev=%.3f\n", er.Quantum.Distribution.Mean(), er.Quantum.Distribution.StdDev())
	}
	return s
}
