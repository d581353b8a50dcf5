package main

import (
	"github.com/TheMathDoctor/random-walks/internal/store"
	"github.com/TheMathDoctor/random-walks/internal/walk"
	"github.com/spf13/cobra"
)

func newClassicalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classical",
		Short: "Run a classical random walk and sample its position distribution",
		Long: `Sample a classical random walk on a cycle of 2^qubits nodes.

Every shot starts an independent walker at the center node and flips a
coin --steps times, moving one node up or down with wraparound. With
--bias the coin favors the up direction.

Example:
  qwalk classical --qubits 5 --steps 40 --shots 1024 --bias 0.6`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			p := resolveWalkParams(cmd, cfg)
			bias, _ := cmd.Flags().GetFloat64("bias")

			walkCfg := walk.ClassicalConfig{
				PositionQubits: p.Qubits,
				Steps:          p.Steps,
				Shots:          p.Shots,
				Bias:           bias,
			}

			rng, seed := walk.NewRand(p.Seed)
			dist, err := walk.RunClassical(walkCfg, rng)
			if err != nil {
				return err
			}

			return finishRun(cmd, cfg, store.Run{
				Kind:           store.KindClassical,
				PositionQubits: walkCfg.PositionQubits,
				Steps:          walkCfg.Steps,
				Shots:          walkCfg.Shots,
				Bias:           walkCfg.Bias,
				Seed:           seed,
				Distribution:   dist,
			})
		},
	}

	addWalkFlags(cmd)
	cmd.Flags().Float64("bias", 0, "Probability of stepping up (0 = fair coin)")

	return cmd
}
