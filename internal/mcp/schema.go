package mcp

import (
	"time"
)

// QuantumInput defines the input for the qwalk_quantum tool.
type QuantumInput struct {
	PositionQubits int    `json:"position_qubits,omitempty" jsonschema:"Width of the position register; the cycle has 2^position_qubits nodes (default from config)"`
	Steps          int    `json:"steps,omitempty" jsonschema:"Number of coin-then-shift applications (default from config)"`
	Shots          int    `json:"shots,omitempty" jsonschema:"Number of position measurements (default from config)"`
	Coin           string `json:"coin,omitempty" jsonschema:"Coin operator: 'hadamard' or 'balanced'"`
	CoinState      string `json:"coin_state,omitempty" jsonschema:"Initial coin state: 'zero', 'one', or 'symmetric'"`
	Seed           uint64 `json:"seed,omitempty" jsonschema:"Sampler seed; 0 derives one from the clock"`
	Save           bool   `json:"save,omitempty" jsonschema:"Persist the run to the store (default: false)"`
}

// ClassicalInput defines the input for the qwalk_classical tool.
type ClassicalInput struct {
	PositionQubits int     `json:"position_qubits,omitempty" jsonschema:"Width of the position register; the cycle has 2^position_qubits nodes (default from config)"`
	Steps          int     `json:"steps,omitempty" jsonschema:"Number of ±1 moves per shot (default from config)"`
	Shots          int     `json:"shots,omitempty" jsonschema:"Number of independent walkers (default from config)"`
	Bias           float64 `json:"bias,omitempty" jsonschema:"Probability of stepping up; 0 means fair (0.5)"`
	Seed           uint64  `json:"seed,omitempty" jsonschema:"Sampler seed; 0 derives one from the clock"`
	Save           bool    `json:"save,omitempty" jsonschema:"Persist the run to the store (default: false)"`
}

// RunSummary is the stats view of a single run returned by the walk tools.
type RunSummary struct {
	ID        string      `json:"id,omitempty" jsonschema:"Store ID when the run was saved"`
	Kind      string      `json:"kind"`
	Nodes     int         `json:"nodes" jsonschema:"Cycle size"`
	Steps     int         `json:"steps"`
	Shots     int         `json:"shots"`
	Seed      uint64      `json:"seed" jsonschema:"Effective sampler seed"`
	Mean      float64     `json:"mean"`
	StdDev    float64     `json:"stddev"`
	Counts    map[int]int `json:"counts" jsonschema:"Node index to shot count"`
	Coin      string      `json:"coin,omitempty"`
	CoinState string      `json:"coin_state,omitempty"`
	Bias      float64     `json:"bias,omitempty"`
}

// CompareInput defines the input for the qwalk_compare tool.
type CompareInput struct {
	PositionQubits int     `json:"position_qubits,omitempty" jsonschema:"Width of the position register shared by both walks"`
	Steps          int     `json:"steps,omitempty" jsonschema:"Number of steps for both walks"`
	Shots          int     `json:"shots,omitempty" jsonschema:"Number of samples for both walks"`
	Coin           string  `json:"coin,omitempty" jsonschema:"Quantum coin operator"`
	CoinState      string  `json:"coin_state,omitempty" jsonschema:"Initial quantum coin state"`
	Bias           float64 `json:"bias,omitempty" jsonschema:"Classical up-step probability"`
	Seed           uint64  `json:"seed,omitempty" jsonschema:"Sampler seed shared by both walks; 0 derives one from the clock"`
	Save           bool    `json:"save,omitempty" jsonschema:"Persist both runs to the store (default: false)"`
}

// CompareOutput defines the output for the qwalk_compare tool.
type CompareOutput struct {
	Classical      RunSummary `json:"classical"`
	Quantum        RunSummary `json:"quantum"`
	TotalVariation float64    `json:"total_variation" jsonschema:"Total variation distance between the two distributions (0-1)"`
	Message        string     `json:"message" jsonschema:"Human-readable comparison summary"`
}

// RunsInput defines the input for the qwalk_runs tool.
type RunsInput struct {
	Kind  string `json:"kind,omitempty" jsonschema:"Filter by run kind: 'classical' or 'quantum'"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of runs to return (default: 20)"`
}

// RunsOutput defines the output for the qwalk_runs tool.
type RunsOutput struct {
	Runs  []RunListItem `json:"runs" jsonschema:"Stored runs, newest first"`
	Count int           `json:"count" jsonschema:"Number of runs returned"`
}

// RunListItem provides a list view of a stored run.
type RunListItem struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Nodes     int       `json:"nodes"`
	Steps     int       `json:"steps"`
	Shots     int       `json:"shots"`
	Mean      float64   `json:"mean"`
	StdDev    float64   `json:"stddev"`
	CreatedAt time.Time `json:"created_at"`
}

// GetInput defines the input for the qwalk_get tool.
type GetInput struct {
	ID string `json:"id" jsonschema:"Run ID to fetch"`
}

// GetOutput defines the output for the qwalk_get tool.
type GetOutput struct {
	Run RunSummary `json:"run"`
}
