package main

import (
	"fmt"
	"os"

	"github.com/TheMathDoctor/random-walks/internal/config"
	"github.com/TheMathDoctor/random-walks/internal/store"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qwalk",
		Short: "Classical and quantum random walks on a cycle",
		Long: `qwalk compares a classical random walk against a coined quantum walk
on a cycle graph of 2^n nodes.

Both walks start at the center node and run the same number of steps.
The classical walker flips a coin and moves one node per step; the
quantum walker evolves under a coin-and-shift unitary and is sampled
at the end. The quantum walk spreads ballistically, the classical walk
diffusively, and qwalk measures exactly that difference.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for machine consumption)")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default ~/.qwalk/config.yaml)")
	rootCmd.PersistentFlags().String("store-dir", "", "Run store directory (default ~/.qwalk)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newQuantumCmd(),
		newClassicalCmd(),
		newCompareCmd(),
		newRunsCmd(),
		newReportCmd(),
		newConfigCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration for a command invocation:
// defaults, then config file, then environment, then global flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if dir, _ := cmd.Flags().GetString("store-dir"); dir != "" {
		cfg.Store.Dir = dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore opens the SQLite run store for the resolved config.
func openStore(cfg *config.Config) (*store.SQLiteRunStore, string, error) {
	dir, err := cfg.StoreDir()
	if err != nil {
		return nil, "", err
	}
	s, err := store.NewSQLiteRunStore(dir)
	if err != nil {
		return nil, "", fmt.Errorf("open run store: %w", err)
	}
	return s, dir, nil
}
