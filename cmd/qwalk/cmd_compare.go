package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/TheMathDoctor/random-walks/internal/store"
	"github.com/TheMathDoctor/random-walks/internal/visualization"
	"github.com/TheMathDoctor/random-walks/internal/walk"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run matched classical and quantum walks and compare their spread",
		Long: `Run a classical and a quantum walk with identical cycle size, step
count, shot count, and seed, then compare the sampled distributions.

The comparison reports each walk's mean and standard deviation and the
total variation distance between the two distributions. The quantum
walk's standard deviation grows linearly with steps while the
classical one grows with the square root, which is the effect this
command exists to show.

Example:
  qwalk compare --qubits 6 --steps 20 --shots 4096 --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			p := resolveWalkParams(cmd, cfg)
			bias, _ := cmd.Flags().GetFloat64("bias")

			coin := cfg.Walk.Coin
			if cmd.Flags().Changed("coin") {
				coin, _ = cmd.Flags().GetString("coin")
			}
			coinState := cfg.Walk.CoinState
			if cmd.Flags().Changed("coin-state") {
				coinState, _ = cmd.Flags().GetString("coin-state")
			}

			// Resolve the seed once so both runs record the same one.
			_, seed := walk.NewRand(p.Seed)

			classicalCfg := walk.ClassicalConfig{
				PositionQubits: p.Qubits,
				Steps:          p.Steps,
				Shots:          p.Shots,
				Bias:           bias,
			}
			rng, _ := walk.NewRand(seed)
			classicalDist, err := walk.RunClassical(classicalCfg, rng)
			if err != nil {
				return err
			}

			quantumCfg := walk.QuantumConfig{
				PositionQubits: p.Qubits,
				Steps:          p.Steps,
				Shots:          p.Shots,
				Coin:           walk.Coin(coin),
				CoinState:      walk.CoinState(coinState),
			}
			rng, _ = walk.NewRand(seed)
			quantumDist, err := walk.RunQuantum(quantumCfg, rng)
			if err != nil {
				return err
			}

			classical := store.Run{
				Kind:           store.KindClassical,
				PositionQubits: p.Qubits,
				Steps:          p.Steps,
				Shots:          p.Shots,
				Bias:           bias,
				Seed:           seed,
				Distribution:   classicalDist,
			}
			quantum := store.Run{
				Kind:           store.KindQuantum,
				PositionQubits: p.Qubits,
				Steps:          p.Steps,
				Shots:          p.Shots,
				Coin:           string(quantumCfg.Coin),
				CoinState:      string(quantumCfg.CoinState),
				Seed:           seed,
				Distribution:   quantumDist,
			}

			if p.Save {
				s, _, err := openStore(cfg)
				if err != nil {
					return err
				}
				defer s.Close()

				ctx := context.Background()
				if classical.ID, err = s.SaveRun(ctx, classical); err != nil {
					return fmt.Errorf("save classical run: %w", err)
				}
				if quantum.ID, err = s.SaveRun(ctx, quantum); err != nil {
					return fmt.Errorf("save quantum run: %w", err)
				}
			}

			logRunEvent(cfg, classical)
			logRunEvent(cfg, quantum)

			tv, err := walk.TotalVariationDistance(classicalDist, quantumDist)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"classical":       runPayload(classical),
					"quantum":         runPayload(quantum),
					"total_variation": tv,
				})
			}

			out, err := visualization.RenderComparison(classicalDist, quantumDist)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			fmt.Fprintf(cmd.OutOrStdout(), "seed %d\n", seed)
			if classical.ID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved as %s and %s\n", classical.ID, quantum.ID)
			}
			return nil
		},
	}

	addWalkFlags(cmd)
	cmd.Flags().String("coin", "", "Coin operator: hadamard or balanced")
	cmd.Flags().String("coin-state", "", "Initial coin state: zero, one, or symmetric")
	cmd.Flags().Float64("bias", 0, "Classical up-step probability (0 = fair coin)")

	return cmd
}
