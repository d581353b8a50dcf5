// Package store defines the RunStore interface for persisting walk
// experiment runs, with SQLite and in-memory implementations.
package store

import (
	"context"
	"time"

	"github.com/TheMathDoctor/random-walks/internal/walk"
)

// RunKind discriminates the two experiment types.
type RunKind string

const (
	KindClassical RunKind = "classical"
	KindQuantum   RunKind = "quantum"
)

// Valid reports whether k names a known run kind.
func (k RunKind) Valid() bool {
	return k == KindClassical || k == KindQuantum
}

// Run is one recorded experiment: the parameters that produced it and
// the sampled position distribution.
type Run struct {
	ID             string             `json:"id"`
	Kind           RunKind            `json:"kind"`
	PositionQubits int                `json:"position_qubits"`
	Steps          int                `json:"steps"`
	Shots          int                `json:"shots"`
	Coin           string             `json:"coin,omitempty"`       // quantum only
	CoinState      string             `json:"coin_state,omitempty"` // quantum only
	Bias           float64            `json:"bias,omitempty"`       // classical only
	Seed           uint64             `json:"seed"`
	CreatedAt      time.Time          `json:"created_at"`
	Distribution   *walk.Distribution `json:"distribution"`
}

// RunFilter narrows ListRuns results. Zero values match everything.
type RunFilter struct {
	Kind  RunKind
	Limit int
}

// RunStore persists and retrieves experiment runs.
type RunStore interface {
	// SaveRun stores a run. An empty ID is assigned; the assigned ID is
	// returned.
	SaveRun(ctx context.Context, run Run) (string, error)

	// GetRun returns the run with the given ID, or nil if absent.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns runs matching the filter, newest first.
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)

	// DeleteRun removes the run with the given ID.
	DeleteRun(ctx context.Context, id string) error

	Close() error
}
