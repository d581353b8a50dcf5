package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/TheMathDoctor/random-walks/internal/store"
	"github.com/TheMathDoctor/random-walks/internal/visualization"
	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage stored walk runs",
	}

	cmd.AddCommand(
		newRunsListCmd(),
		newRunsShowCmd(),
		newRunsDeleteCmd(),
		newRunsExportCmd(),
		newRunsImportCmd(),
	)

	return cmd
}

func newRunsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			kind, _ := cmd.Flags().GetString("kind")
			limit, _ := cmd.Flags().GetInt("limit")

			filter := store.RunFilter{Kind: store.RunKind(kind), Limit: limit}
			if filter.Kind != "" && !filter.Kind.Valid() {
				return fmt.Errorf("unknown run kind: %s (valid: classical, quantum)", kind)
			}

			s, _, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.ListRuns(context.Background(), filter)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"runs":  runs,
					"count": len(runs),
				})
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored runs. Use 'qwalk compare --save' to record one.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Stored runs (%d):\n\n", len(runs))
			for _, run := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-9s %2d qubits %4d steps %6d shots  mean %6.2f  stddev %5.2f\n",
					run.ID, run.Kind, run.PositionQubits, run.Steps, run.Shots,
					run.Distribution.Mean(), run.Distribution.StdDev())
			}
			return nil
		},
	}

	cmd.Flags().String("kind", "", "Filter by run kind: classical or quantum")
	cmd.Flags().Int("limit", 0, "Maximum number of runs to list (0 = all)")

	return cmd
}

func newRunsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a stored run with its full distribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			s, _, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			run, err := s.GetRun(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("get run: %w", err)
			}
			if run == nil {
				return fmt.Errorf("run not found: %s", args[0])
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(runPayload(*run))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Run %s\n", run.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "  kind:   %s\n", run.Kind)
			fmt.Fprintf(cmd.OutOrStdout(), "  cycle:  %d nodes (%d qubits)\n", 1<<run.PositionQubits, run.PositionQubits)
			fmt.Fprintf(cmd.OutOrStdout(), "  steps:  %d\n", run.Steps)
			fmt.Fprintf(cmd.OutOrStdout(), "  shots:  %d\n", run.Shots)
			if run.Kind == store.KindQuantum {
				fmt.Fprintf(cmd.OutOrStdout(), "  coin:   %s (initial state %s)\n", run.Coin, run.CoinState)
			} else if run.Bias != 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "  bias:   %.3f\n", run.Bias)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  seed:   %d\n", run.Seed)
			fmt.Fprintf(cmd.OutOrStdout(), "  saved:  %s\n\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprint(cmd.OutOrStdout(), visualization.RenderHistogram("distribution", run.Distribution))
			return nil
		},
	}
}

func newRunsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			s, _, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteRun(context.Background(), args[0]); err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					"status": "deleted",
					"id":     args[0],
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
			return nil
		},
	}
}

func newRunsExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <output-file>",
		Short: "Export stored runs to JSONL or Arrow IPC",
		Long: `Export stored runs to a file.

The jsonl format writes one run per line and can be re-imported with
'qwalk runs import'. The arrow format writes one row per (run, node)
pair as an Arrow IPC file for analysis in dataframe tooling.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			kind, _ := cmd.Flags().GetString("kind")

			filter := store.RunFilter{Kind: store.RunKind(kind)}
			if filter.Kind != "" && !filter.Kind.Valid() {
				return fmt.Errorf("unknown run kind: %s (valid: classical, quantum)", kind)
			}

			s, _, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := context.Background()
			var count int
			unit := "runs"
			switch format {
			case "jsonl":
				count, err = store.ExportJSONL(ctx, s, filter, args[0])
			case "arrow":
				// Arrow export is long format, one row per (run, node) pair.
				count, err = store.ExportArrow(ctx, s, filter, args[0])
				unit = "rows"
			default:
				return fmt.Errorf("unsupported format %q (use 'jsonl' or 'arrow')", format)
			}
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"status": "exported",
					"format": format,
					"path":   args[0],
					"count":  count,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s to %s (%s)\n", count, unit, args[0], format)
			return nil
		},
	}

	cmd.Flags().String("format", "jsonl", "Export format: jsonl or arrow")
	cmd.Flags().String("kind", "", "Only export runs of this kind")

	return cmd
}

func newRunsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <input-file>",
		Short: "Import runs from a JSONL export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			s, _, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			count, err := store.ImportJSONL(context.Background(), s, args[0])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"status": "imported",
					"path":   args[0],
					"count":  count,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d runs from %s\n", count, args[0])
			return nil
		},
	}
}
