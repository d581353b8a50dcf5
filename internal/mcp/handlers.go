package mcp

import (
	"context"
	"fmt"

	"github.com/TheMathDoctor/random-walks/internal/store"
	"github.com/TheMathDoctor/random-walks/internal/walk"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// defaultRunsLimit caps qwalk_runs output when no limit is given.
const defaultRunsLimit = 20

// handleQuantum runs a coined quantum walk and returns the sampled
// distribution with summary statistics.
func (s *Server) handleQuantum(ctx context.Context, req *sdk.CallToolRequest, args QuantumInput) (*sdk.CallToolResult, RunSummary, error) {
	cfg := walk.QuantumConfig{
		PositionQubits: intOr(args.PositionQubits, s.defaults.PositionQubits),
		Steps:          intOr(args.Steps, s.defaults.Steps),
		Shots:          intOr(args.Shots, s.defaults.Shots),
		Coin:           walk.Coin(stringOr(args.Coin, s.defaults.Coin)),
		CoinState:      walk.CoinState(stringOr(args.CoinState, s.defaults.CoinState)),
	}

	rng, seed := walk.NewRand(args.Seed)
	dist, err := walk.RunQuantum(cfg, rng)
	if err != nil {
		return nil, RunSummary{}, err
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
	if args.Save {
		if run.ID, err = s.store.SaveRun(ctx, run); err != nil {
			return nil, RunSummary{}, fmt.Errorf("failed to save run: %w", err)
		}
	}
	return nil, summarize(run), nil
}

// handleClassical runs a classical random walk.
func (s *Server) handleClassical(ctx context.Context, req *sdk.CallToolRequest, args ClassicalInput) (*sdk.CallToolResult, RunSummary, error) {
	cfg := walk.ClassicalConfig{
		PositionQubits: intOr(args.PositionQubits, s.defaults.PositionQubits),
		Steps:          intOr(args.Steps, s.defaults.Steps),
		Shots:          intOr(args.Shots, s.defaults.Shots),
		Bias:           args.Bias,
	}

	rng, seed := walk.NewRand(args.Seed)
	dist, err := walk.RunClassical(cfg, rng)
	if err != nil {
		return nil, RunSummary{}, err
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
	if args.Save {
		if run.ID, err = s.store.SaveRun(ctx, run); err != nil {
			return nil, RunSummary{}, fmt.Errorf("failed to save run: %w", err)
		}
	}
	return nil, summarize(run), nil
}

// handleCompare runs matched classical and quantum walks from the same
// seed and reports how far the two distributions have diverged.
func (s *Server) handleCompare(ctx context.Context, req *sdk.CallToolRequest, args CompareInput) (*sdk.CallToolResult, CompareOutput, error) {
	// Resolve the seed once so both walks record the same one.
	_, seed := walk.NewRand(args.Seed)

	_, classical, err := s.handleClassical(ctx, req, ClassicalInput{
		PositionQubits: args.PositionQubits,
		Steps:          args.Steps,
		Shots:          args.Shots,
		Bias:           args.Bias,
		Seed:           seed,
		Save:           args.Save,
	})
	if err != nil {
		return nil, CompareOutput{}, err
	}

	_, quantum, err := s.handleQuantum(ctx, req, QuantumInput{
		PositionQubits: args.PositionQubits,
		Steps:          args.Steps,
		Shots:          args.Shots,
		Coin:           args.Coin,
		CoinState:      args.CoinState,
		Seed:           seed,
		Save:           args.Save,
	})
	if err != nil {
		return nil, CompareOutput{}, err
	}

	tv, err := walk.TotalVariationDistance(
		&walk.Distribution{Nodes: classical.Nodes, Counts: classical.Counts},
		&walk.Distribution{Nodes: quantum.Nodes, Counts: quantum.Counts},
	)
	if err != nil {
		return nil, CompareOutput{}, err
	}

	msg := fmt.Sprintf("after %d steps: classical stddev %.2f, quantum stddev %.2f, total variation %.4f",
		classical.Steps, classical.StdDev, quantum.StdDev, tv)

	return nil, CompareOutput{
		Classical:      classical,
		Quantum:        quantum,
		TotalVariation: tv,
		Message:        msg,
	}, nil
}

// handleRuns lists stored runs, newest first.
func (s *Server) handleRuns(ctx context.Context, req *sdk.CallToolRequest, args RunsInput) (*sdk.CallToolResult, RunsOutput, error) {
	filter := store.RunFilter{
		Kind:  store.RunKind(args.Kind),
		Limit: intOr(args.Limit, defaultRunsLimit),
	}
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, RunsOutput{}, fmt.Errorf("unknown run kind: %s (valid: classical, quantum)", args.Kind)
	}

	runs, err := s.store.ListRuns(ctx, filter)
	if err != nil {
		return nil, RunsOutput{}, fmt.Errorf("failed to list runs: %w", err)
	}

	items := make([]RunListItem, 0, len(runs))
	for _, run := range runs {
		items = append(items, RunListItem{
			ID:        run.ID,
			Kind:      string(run.Kind),
			Nodes:     1 << run.PositionQubits,
			Steps:     run.Steps,
			Shots:     run.Shots,
			Mean:      run.Distribution.Mean(),
			StdDev:    run.Distribution.StdDev(),
			CreatedAt: run.CreatedAt,
		})
	}
	return nil, RunsOutput{Runs: items, Count: len(items)}, nil
}

// handleGet fetches a stored run by ID.
func (s *Server) handleGet(ctx context.Context, req *sdk.CallToolRequest, args GetInput) (*sdk.CallToolResult, GetOutput, error) {
	if args.ID == "" {
		return nil, GetOutput{}, fmt.Errorf("id is required")
	}
	run, err := s.store.GetRun(ctx, args.ID)
	if err != nil {
		return nil, GetOutput{}, fmt.Errorf("failed to get run: %w", err)
	}
	if run == nil {
		return nil, GetOutput{}, fmt.Errorf("run not found: %s", args.ID)
	}
	return nil, GetOutput{Run: summarize(*run)}, nil
}

// summarize builds the stats view of a run.
func summarize(run store.Run) RunSummary {
	return RunSummary{
		ID:        run.ID,
		Kind:      string(run.Kind),
		Nodes:     run.Distribution.Nodes,
		Steps:     run.Steps,
		Shots:     run.Shots,
		Seed:      run.Seed,
		Mean:      run.Distribution.Mean(),
		StdDev:    run.Distribution.StdDev(),
		Counts:    run.Distribution.Counts,
		Coin:      run.Coin,
		CoinState: run.CoinState,
		Bias:      run.Bias,
	}
}

// intOr returns v unless it is zero, in which case def is used.
func intOr(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}

// stringOr returns v unless it is empty, in which case def is used.
func stringOr(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
