package main

import (
	"github.com/TheMathDoctor/random-walks/internal/store"
	"github.com/TheMathDoctor/random-walks/internal/walk"
	"github.com/spf13/cobra"
)

func newQuantumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quantum",
		Short: "Run a coined quantum walk and sample its position distribution",
		Long: `Simulate a coined quantum walk on a cycle of 2^qubits nodes.

The walker starts at the center node with the coin in the chosen
initial state. Each step applies the coin operator to the coin qubit
and then shifts the position up or down conditioned on the coin. After
all steps the position register is measured --shots times.

Example:
  qwalk quantum --qubits 5 --steps 40 --shots 1024 --coin hadamard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			p := resolveWalkParams(cmd, cfg)

			coin := cfg.Walk.Coin
			if cmd.Flags().Changed("coin") {
				coin, _ = cmd.Flags().GetString("coin")
			}
			coinState := cfg.Walk.CoinState
			if cmd.Flags().Changed("coin-state") {
				coinState, _ = cmd.Flags().GetString("coin-state")
			}

			walkCfg := walk.QuantumConfig{
				PositionQubits: p.Qubits,
				Steps:          p.Steps,
				Shots:          p.Shots,
				Coin:           walk.Coin(coin),
				CoinState:      walk.CoinState(coinState),
			}

			rng, seed := walk.NewRand(p.Seed)
			dist, err := walk.RunQuantum(walkCfg, rng)
			if err != nil {
				return err
			}

			return finishRun(cmd, cfg, store.Run{
				Kind:           store.KindQuantum,
				PositionQubits: walkCfg.PositionQubits,
				Steps:          walkCfg.Steps,
				Shots:          walkCfg.Shots,
				Coin:           string(walkCfg.Coin),
				CoinState:      string(walkCfg.CoinState),
				Seed:           seed,
				Distribution:   dist,
			})
		},
	}

	addWalkFlags(cmd)
	cmd.Flags().String("coin", "", "Coin operator: hadamard or balanced")
	cmd.Flags().String("coin-state", "", "Initial coin state: zero, one, or symmetric")

	return cmd
}
