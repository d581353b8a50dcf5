package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// newTestRootCmd creates a root command with persistent flags for testing subcommands
func newTestRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "qwalk",
	}
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file path")
	rootCmd.PersistentFlags().String("store-dir", "", "Run store directory")
	return rootCmd
}

// isolateHome sets HOME to a temp directory to avoid touching real ~/.qwalk/
// MUST be called for any test that loads config or creates stores
func isolateHome(t *testing.T, tmpDir string) {
	t.Helper()
	tmpHome := filepath.Join(tmpDir, "home")
	if err := os.MkdirAll(tmpHome, 0700); err != nil {
		t.Fatalf("Failed to create temp home: %v", err)
	}
	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpHome)
	t.Cleanup(func() {
		os.Setenv("HOME", oldHome)
	})
}

func TestVersionCommand(t *testing.T) {
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newVersionCmd())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out.String(), "qwalk version") {
		t.Errorf("unexpected version output: %q", out.String())
	}
}

func TestVersionCommandJSON(t *testing.T) {
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newVersionCmd())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version", "--json"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version --json failed: %v", err)
	}

	var result map[string]string
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result["version"] == "" {
		t.Error("version missing from JSON output")
	}
}

func TestConfigCommand(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newConfigCmd())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "--json"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config failed: %v", err)
	}

	var result struct {
		Walk struct {
			PositionQubits int `json:"position_qubits"`
		} `json:"walk"`
	}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.Walk.PositionQubits != 5 {
		t.Errorf("position_qubits = %d, want default 5", result.Walk.PositionQubits)
	}
}

func TestConfigFileFlag(t *testing.T) {
	tmpDir := t.TempDir()
	isolateHome(t, tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	content := "walk:\n  position_qubits: 7\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newConfigCmd())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "--json", "--config", configPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config failed: %v", err)
	}

	var result struct {
		Walk struct {
			PositionQubits int `json:"position_qubits"`
		} `json:"walk"`
	}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.Walk.PositionQubits != 7 {
		t.Errorf("position_qubits = %d, want 7 from config file", result.Walk.PositionQubits)
	}
}
