package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TheMathDoctor/random-walks/internal/store"
)

// seedRun saves one classical run via the CLI and returns its ID.
func seedRun(t *testing.T, storeDir string, seed string) string {
	t.Helper()
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newClassicalCmd())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"classical", "--json", "--qubits", "4", "--steps", "6", "--shots", "64", "--seed", seed, "--save", "--store-dir", storeDir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("seed run failed: %v", err)
	}

	var result runResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return result.Run.ID
}

func TestRunsListAndShow(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	id := seedRun(t, tmpDir, "5")

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newRunsCmd())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"runs", "list", "--json", "--store-dir", tmpDir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("runs list failed: %v", err)
	}

	var listResult struct {
		Runs  []store.Run `json:"runs"`
		Count int         `json:"count"`
	}
	if err := json.Unmarshal(out.Bytes(), &listResult); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if listResult.Count != 1 || listResult.Runs[0].ID != id {
		t.Errorf("unexpected list result: %+v", listResult)
	}

	// Show the run in text mode.
	rootCmd2 := newTestRootCmd()
	rootCmd2.AddCommand(newRunsCmd())

	out.Reset()
	rootCmd2.SetOut(&out)
	rootCmd2.SetArgs([]string{"runs", "show", id, "--store-dir", tmpDir})
	if err := rootCmd2.Execute(); err != nil {
		t.Fatalf("runs show failed: %v", err)
	}
	if !strings.Contains(out.String(), "16 nodes") {
		t.Errorf("show output missing cycle size:\n%s", out.String())
	}
}

func TestRunsShowUnknown(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newRunsCmd())

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"runs", "show", "classical-0", "--store-dir", tmpDir})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestRunsDelete(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	id := seedRun(t, tmpDir, "9")

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newRunsCmd())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"runs", "delete", id, "--json", "--store-dir", tmpDir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("runs delete failed: %v", err)
	}

	// Listing again shows nothing.
	rootCmd2 := newTestRootCmd()
	rootCmd2.AddCommand(newRunsCmd())

	out.Reset()
	rootCmd2.SetOut(&out)
	rootCmd2.SetArgs([]string{"runs", "list", "--json", "--store-dir", tmpDir})
	if err := rootCmd2.Execute(); err != nil {
		t.Fatalf("runs list failed: %v", err)
	}
	var listResult struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(out.Bytes(), &listResult); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if listResult.Count != 0 {
		t.Errorf("count = %d after delete, want 0", listResult.Count)
	}
}

func TestRunsExportImportRoundtrip(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	seedRun(t, tmpDir, "13")
	seedRun(t, tmpDir, "17")

	exportPath := filepath.Join(tmpDir, "runs.jsonl")

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newRunsCmd())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"runs", "export", exportPath, "--json", "--store-dir", tmpDir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("runs export failed: %v", err)
	}

	var exportResult struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(out.Bytes(), &exportResult); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if exportResult.Count != 2 {
		t.Errorf("exported %d runs, want 2", exportResult.Count)
	}

	// Import into a second, empty store.
	otherDir := filepath.Join(tmpDir, "other")

	rootCmd2 := newTestRootCmd()
	rootCmd2.AddCommand(newRunsCmd())

	out.Reset()
	rootCmd2.SetOut(&out)
	rootCmd2.SetArgs([]string{"runs", "import", exportPath, "--json", "--store-dir", otherDir})
	if err := rootCmd2.Execute(); err != nil {
		t.Fatalf("runs import failed: %v", err)
	}

	var importResult struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(out.Bytes(), &importResult); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if importResult.Count != 2 {
		t.Errorf("imported %d runs, want 2", importResult.Count)
	}
}

func TestRunsExportArrow(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	seedRun(t, tmpDir, "19")

	exportPath := filepath.Join(tmpDir, "runs.arrow")

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newRunsCmd())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"runs", "export", exportPath, "--format", "arrow", "--store-dir", tmpDir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("runs export --format arrow failed: %v", err)
	}
	if !strings.Contains(out.String(), "rows") || !strings.Contains(out.String(), "(arrow)") {
		t.Errorf("unexpected export output: %q", out.String())
	}
}

func TestRunsExportRejectsBadFormat(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newRunsCmd())

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"runs", "export", filepath.Join(tmpDir, "x"), "--format", "csv", "--store-dir", tmpDir})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for unsupported format")
	}
}
