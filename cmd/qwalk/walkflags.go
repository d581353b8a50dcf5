package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/TheMathDoctor/random-walks/internal/config"
	"github.com/TheMathDoctor/random-walks/internal/logging"
	"github.com/TheMathDoctor/random-walks/internal/store"
	"github.com/TheMathDoctor/random-walks/internal/visualization"
	"github.com/spf13/cobra"
)

// addWalkFlags registers the walk parameter flags shared by the
// quantum, classical, and compare commands. Zero values defer to the
// loaded configuration.
func addWalkFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("qubits", "q", 0, "Position register width; the cycle has 2^qubits nodes")
	cmd.Flags().Int("steps", 0, "Number of walk steps")
	cmd.Flags().Int("shots", 0, "Number of measurement samples")
	cmd.Flags().Uint64("seed", 0, "Sampler seed (0 = derive from clock)")
	cmd.Flags().Bool("save", false, "Persist the run to the store")
}

// walkParams holds the resolved shared walk parameters.
type walkParams struct {
	Qubits int
	Steps  int
	Shots  int
	Seed   uint64
	Save   bool
}

// resolveWalkParams merges flags over config defaults. Flags that were
// not set on the command line fall back to the config values.
func resolveWalkParams(cmd *cobra.Command, cfg *config.Config) walkParams {
	p := walkParams{
		Qubits: cfg.Walk.PositionQubits,
		Steps:  cfg.Walk.Steps,
		Shots:  cfg.Walk.Shots,
		Seed:   cfg.Walk.Seed,
	}
	if cmd.Flags().Changed("qubits") {
		p.Qubits, _ = cmd.Flags().GetInt("qubits")
	}
	if cmd.Flags().Changed("steps") {
		p.Steps, _ = cmd.Flags().GetInt("steps")
	}
	if cmd.Flags().Changed("shots") {
		p.Shots, _ = cmd.Flags().GetInt("shots")
	}
	if cmd.Flags().Changed("seed") {
		p.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	p.Save, _ = cmd.Flags().GetBool("save")
	return p
}

// finishRun persists the run if requested and prints it in the
// selected output format.
func finishRun(cmd *cobra.Command, cfg *config.Config, run store.Run) error {
	if save, _ := cmd.Flags().GetBool("save"); save {
		s, _, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		run.ID, err = s.SaveRun(context.Background(), run)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
	}

	logRunEvent(cfg, run)

	jsonOut, _ := cmd.Flags().GetBool("json")
	if jsonOut {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(runPayload(run))
	}

	title := string(run.Kind) + " walk"
	fmt.Fprint(cmd.OutOrStdout(), visualization.RenderHistogram(title, run.Distribution))
	fmt.Fprintf(cmd.OutOrStdout(), "\nmean %.2f, stddev %.2f, seed %d\n",
		run.Distribution.Mean(), run.Distribution.StdDev(), run.Seed)
	if run.ID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved as %s\n", run.ID)
	}
	return nil
}

// runPayload builds the JSON output for a run, the stored record plus
// derived statistics.
func runPayload(run store.Run) map[string]interface{} {
	return map[string]interface{}{
		"run":    run,
		"mean":   run.Distribution.Mean(),
		"stddev": run.Distribution.StdDev(),
	}
}

// logRunEvent writes a run summary to the experiment trace log when
// trace logging is enabled.
func logRunEvent(cfg *config.Config, run store.Run) {
	dir, err := cfg.StoreDir()
	if err != nil {
		return
	}
	el := logging.NewExperimentLogger(dir, cfg.Logging.Level)
	defer el.Close()
	el.Log(map[string]any{
		"event":  "run_completed",
		"id":     run.ID,
		"kind":   run.Kind,
		"qubits": run.PositionQubits,
		"steps":  run.Steps,
		"shots":  run.Shots,
		"seed":   run.Seed,
		"mean":   run.Distribution.Mean(),
		"stddev": run.Distribution.StdDev(),
	})
}
