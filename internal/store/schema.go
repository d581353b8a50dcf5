package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaVersion is bumped whenever the table layout changes.
const schemaVersion = 1

// schema defines the run tables. Distribution counts live in their own
// table keyed by run so exports can stream them without decoding JSON.
const schema = `
CREATE TABLE IF NOT EXISTS schema_info (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	kind            TEXT NOT NULL,
	position_qubits INTEGER NOT NULL,
	steps           INTEGER NOT NULL,
	shots           INTEGER NOT NULL,
	coin            TEXT NOT NULL DEFAULT '',
	coin_state      TEXT NOT NULL DEFAULT '',
	bias            REAL NOT NULL DEFAULT 0,
	seed            INTEGER NOT NULL,
	nodes           INTEGER NOT NULL,
	created_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_counts (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	node   INTEGER NOT NULL,
	count  INTEGER NOT NULL,
	PRIMARY KEY (run_id, node)
);

CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`

// InitSchema creates the tables if they don't exist and records the
// schema version.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_info`).Scan(&count); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if count == 0 {
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_info (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	}
	return nil
}
