// Package config provides unified configuration loading for qwalk.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/TheMathDoctor/random-walks/internal/walk"
	"gopkg.in/yaml.v3"
)

// Config contains all qwalk configuration settings.
type Config struct {
	// Walk contains the default walk parameters used when flags are
	// not given.
	Walk WalkConfig `json:"walk" yaml:"walk"`

	// Store contains settings for run persistence.
	Store StoreConfig `json:"store" yaml:"store"`

	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// WalkConfig holds default walk parameters.
type WalkConfig struct {
	// PositionQubits sets the cycle to 2^PositionQubits nodes.
	PositionQubits int `json:"position_qubits" yaml:"position_qubits"`

	// Steps is the number of walk steps.
	Steps int `json:"steps" yaml:"steps"`

	// Shots is the number of measurement samples.
	Shots int `json:"shots" yaml:"shots"`

	// Coin selects the quantum coin operator: "hadamard" or "balanced".
	Coin string `json:"coin" yaml:"coin"`

	// CoinState selects the initial coin state: "zero", "one", or
	// "symmetric".
	CoinState string `json:"coin_state" yaml:"coin_state"`

	// Seed seeds the sampler RNG. 0 derives a seed from the clock.
	Seed uint64 `json:"seed" yaml:"seed"`
}

// StoreConfig configures run persistence.
type StoreConfig struct {
	// Dir is the directory holding qwalk.db and exports. Empty means
	// ~/.qwalk.
	Dir string `json:"dir" yaml:"dir"`
}

// LoggingConfig configures qwalk's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables experiment trace logging to <store dir>/trace.jsonl.
	// "trace" additionally includes per-step state summaries.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults: the standard
// 32-node, 40-step, 1024-shot comparison.
func Default() *Config {
	return &Config{
		Walk: WalkConfig{
			PositionQubits: 5,
			Steps:          40,
			Shots:          1024,
			Coin:           string(walk.CoinHadamard),
			CoinState:      string(walk.CoinStateSymmetric),
		},
		Store: StoreConfig{},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default locations and environment
// variables. Order: defaults -> ~/.qwalk/config.yaml -> environment.
func Load() (*Config, error) {
	config := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".qwalk", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// StoreDir returns the configured store directory, defaulting to
// ~/.qwalk.
func (c *Config) StoreDir() (string, error) {
	if c.Store.Dir != "" {
		return c.Store.Dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(homeDir, ".qwalk"), nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Walk.PositionQubits <= 0 {
		return fmt.Errorf("position_qubits must be positive, got %d", c.Walk.PositionQubits)
	}
	if c.Walk.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", c.Walk.Steps)
	}
	if c.Walk.Shots <= 0 {
		return fmt.Errorf("shots must be positive, got %d", c.Walk.Shots)
	}
	if c.Walk.Coin != "" && !walk.Coin(c.Walk.Coin).Valid() {
		return fmt.Errorf("invalid coin: %s (valid: hadamard, balanced)", c.Walk.Coin)
	}
	if c.Walk.CoinState != "" && !walk.CoinState(c.Walk.CoinState).Valid() {
		return fmt.Errorf("invalid coin state: %s (valid: zero, one, symmetric)", c.Walk.CoinState)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("QWALK_POSITION_QUBITS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Walk.PositionQubits = n
		}
	}
	if v := os.Getenv("QWALK_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Walk.Steps = n
		}
	}
	if v := os.Getenv("QWALK_SHOTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Walk.Shots = n
		}
	}
	if v := os.Getenv("QWALK_COIN"); v != "" {
		config.Walk.Coin = v
	}
	if v := os.Getenv("QWALK_COIN_STATE"); v != "" {
		config.Walk.CoinState = v
	}
	if v := os.Getenv("QWALK_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Walk.Seed = n
		}
	}
	if v := os.Getenv("QWALK_STORE_DIR"); v != "" {
		config.Store.Dir = v
	}
	if v := os.Getenv("QWALK_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
