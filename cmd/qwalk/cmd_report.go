package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/TheMathDoctor/random-walks/internal/store"
	"github.com/TheMathDoctor/random-walks/internal/visualization"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <run-id>...",
		Short: "Render stored runs as an HTML report",
		Long: `Render one or more stored runs as a self-contained HTML report with
probability charts. When given exactly one classical and one quantum
run over the same cycle, the report includes their total variation
distance.

By default the report is written to a file and opened in the browser.
With --serve a local HTTP server hosts the report instead.

Examples:
  qwalk report classical-123 quantum-456
  qwalk report quantum-456 --output walk.html --no-open
  qwalk report classical-123 quantum-456 --serve`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			output, _ := cmd.Flags().GetString("output")
			noOpen, _ := cmd.Flags().GetBool("no-open")
			serve, _ := cmd.Flags().GetBool("serve")
			title, _ := cmd.Flags().GetString("title")

			s, _, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			if serve {
				return runReportServer(cmd, s, title, args, noOpen)
			}
			return writeStaticReport(cmd, s, title, args, output, noOpen)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file path (default under the system temp dir)")
	cmd.Flags().Bool("no-open", false, "Don't open the browser after generating the report")
	cmd.Flags().Bool("serve", false, "Serve the report over a local HTTP server")
	cmd.Flags().String("title", "walk report", "Report title")

	return cmd
}

// writeStaticReport renders the runs to a self-contained HTML file.
func writeStaticReport(cmd *cobra.Command, s store.RunStore, title string, runIDs []string, output string, noOpen bool) error {
	ctx := context.Background()
	runs := make([]*store.Run, 0, len(runIDs))
	for _, id := range runIDs {
		run, err := s.GetRun(ctx, id)
		if err != nil {
			return fmt.Errorf("get run %s: %w", id, err)
		}
		if run == nil {
			return fmt.Errorf("run not found: %s", id)
		}
		runs = append(runs, run)
	}

	htmlBytes, err := visualization.RenderHTML(title, runs)
	if err != nil {
		return fmt.Errorf("render HTML: %w", err)
	}

	outPath := output
	if outPath == "" {
		outPath = filepath.Join(os.TempDir(), "qwalk-report.html")
	}

	if err := os.WriteFile(outPath, htmlBytes, 0644); err != nil {
		return fmt.Errorf("write HTML file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outPath)

	if !noOpen {
		if err := visualization.OpenBrowser(outPath); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser: %v\nOpen %s manually.\n", err, outPath)
		}
	}
	return nil
}

// runReportServer starts a local HTTP server and blocks until Ctrl-C.
func runReportServer(cmd *cobra.Command, s store.RunStore, title string, runIDs []string, noOpen bool) error {
	srv := visualization.NewServer(s, title, runIDs)

	srvCtx, srvCancel := context.WithCancel(context.Background())
	defer srvCancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			srvCancel()
		case <-srvCtx.Done():
		}
	}()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(srvCtx) }()

	// Wait for server to start
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if srv.Addr() != "" {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	addr := srv.Addr()
	if addr == "" {
		return fmt.Errorf("server failed to start")
	}

	url := "http://" + addr
	fmt.Fprintf(cmd.OutOrStdout(), "Report server running at %s\n", url)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl-C to stop.\n")

	if !noOpen {
		if err := visualization.OpenBrowser(url); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser: %v\nOpen %s manually.\n", err, url)
		}
	}

	if err := <-errCh; err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
