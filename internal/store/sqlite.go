package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/TheMathDoctor/random-walks/internal/walk"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteRunStore implements RunStore using SQLite for persistence.
type SQLiteRunStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
}

// NewSQLiteRunStore creates a run store at dir/qwalk.db, creating the
// directory and schema as needed.
func NewSQLiteRunStore(dir string) (*SQLiteRunStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dbPath := filepath.Join(dir, "qwalk.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteRunStore{db: db, dbPath: dbPath}, nil
}

// Path returns the database file path.
func (s *SQLiteRunStore) Path() string { return s.dbPath }

// SaveRun stores a run and its distribution counts in one transaction.
func (s *SQLiteRunStore) SaveRun(ctx context.Context, run Run) (string, error) {
	if err := validateRun(&run); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs
			(id, kind, position_qubits, steps, shots, coin, coin_state, bias, seed, nodes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Kind), run.PositionQubits, run.Steps, run.Shots,
		run.Coin, run.CoinState, run.Bias, int64(run.Seed),
		run.Distribution.Nodes, run.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_counts WHERE run_id = ?`, run.ID); err != nil {
		return "", fmt.Errorf("failed to clear counts: %w", err)
	}
	for node, count := range run.Distribution.Counts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_counts (run_id, node, count) VALUES (?, ?, ?)`,
			run.ID, node, count); err != nil {
			return "", fmt.Errorf("failed to insert count for node %d: %w", node, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return run.ID, nil
}

// GetRun returns the run with the given ID, or nil if absent.
func (s *SQLiteRunStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, position_qubits, steps, shots, coin, coin_state, bias, seed, nodes, created_at
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}

	if err := s.loadCounts(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns runs matching the filter, newest first.
func (s *SQLiteRunStore) ListRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, kind, position_qubits, steps, shots, coin, coin_state, bias, seed, nodes, created_at
		FROM runs`
	var args []interface{}
	if filter.Kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(filter.Kind))
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	for i := range runs {
		if err := s.loadCounts(ctx, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// DeleteRun removes a run; its counts cascade.
func (s *SQLiteRunStore) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteRunStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// loadCounts populates run.Distribution.Counts from run_counts.
func (s *SQLiteRunStore) loadCounts(ctx context.Context, run *Run) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT node, count FROM run_counts WHERE run_id = ?`, run.ID)
	if err != nil {
		return fmt.Errorf("failed to query counts for %s: %w", run.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var node, count int
		if err := rows.Scan(&node, &count); err != nil {
			return fmt.Errorf("failed to scan count: %w", err)
		}
		run.Distribution.Counts[node] = count
	}
	return rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRun reads one runs row into a Run with an empty distribution.
func scanRun(r rowScanner) (*Run, error) {
	var run Run
	var kind, createdAt string
	var seed int64
	var nodes int
	err := r.Scan(&run.ID, &kind, &run.PositionQubits, &run.Steps, &run.Shots,
		&run.Coin, &run.CoinState, &run.Bias, &seed, &nodes, &createdAt)
	if err != nil {
		return nil, err
	}
	run.Kind = RunKind(kind)
	run.Seed = uint64(seed)
	run.Distribution = walk.NewDistribution(nodes)

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = t
	return &run, nil
}

// validateRun fills defaults and rejects malformed runs before they
// reach a store.
func validateRun(run *Run) error {
	if !run.Kind.Valid() {
		return fmt.Errorf("invalid run kind %q", string(run.Kind))
	}
	if run.Distribution == nil {
		return fmt.Errorf("run has no distribution")
	}
	if run.ID == "" {
		run.ID = NewRunID(run.Kind)
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	return nil
}

// NewRunID generates a unique run ID with a kind prefix.
func NewRunID(kind RunKind) string {
	return fmt.Sprintf("%s-%d", string(kind), time.Now().UnixNano())
}
