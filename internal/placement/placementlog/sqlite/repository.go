// Package sqlite is the SQLite-backed placementlog.Repository.
//
// WAL mode is enabled on Open so readers of the log never block the writer.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jcmexdev/warung-orders/internal/placement/placementlog"

	// Pure-Go driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by GetLatest when an order has no log rows.
var ErrNotFound = placementlog.ErrNotFound

var (
	_ placementlog.Repository = (*Repository)(nil)
	_ placementlog.Reader     = (*Repository)(nil)
)

// The table is append-only. The newest row per order_id is its current state.
const schema = `
CREATE TABLE IF NOT EXISTS placement_logs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id        TEXT        NOT NULL,
    status          TEXT        NOT NULL,
    current_step    TEXT        NOT NULL DEFAULT '',
    -- JSON order, only on STARTED rows.
    payload         TEXT,
    error_messages  TEXT        NOT NULL DEFAULT '[]',
    trace_id        TEXT        NOT NULL DEFAULT '',
    span_id         TEXT        NOT NULL DEFAULT '',
    updated_at      TEXT        NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_placement_logs_order_id ON placement_logs(order_id, updated_at);
CREATE INDEX IF NOT EXISTS idx_placement_logs_trace_id ON placement_logs(trace_id);
`

type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
//
//	repo, err := sqlite.Open("./data/placements.db")
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// Single writer connection.
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends an entry. It is safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *placementlog.Entry) error {
	const q = `
		INSERT INTO placement_logs
			(order_id, status, current_step, payload, error_messages, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.OrderID,
		string(entry.Status),
		entry.CurrentStep,
		nullableString(entry.Payload),
		entry.ErrorMessages,
		entry.TraceID,
		entry.SpanID,
		formatTime(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save placement log for %q: %w", entry.OrderID, err)
	}
	return nil
}

// GetLatest returns the most recent entry for an order.
func (r *Repository) GetLatest(ctx context.Context, orderID string) (*placementlog.Entry, error) {
	const q = `
		SELECT order_id, status, current_step, COALESCE(payload,''), error_messages,
		       trace_id, span_id, updated_at
		FROM   placement_logs
		WHERE  order_id = ?
		ORDER  BY updated_at DESC, id DESC
		LIMIT  1`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, q, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get latest for %q: %w", orderID, err)
	}
	return entry, nil
}

// History returns every entry for an order, oldest first.
func (r *Repository) History(ctx context.Context, orderID string) ([]placementlog.Entry, error) {
	const q = `
		SELECT order_id, status, current_step, COALESCE(payload,''), error_messages,
		       trace_id, span_id, updated_at
		FROM   placement_logs
		WHERE  order_id = ?
		ORDER  BY id ASC`

	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: history for %q: %w", orderID, err)
	}
	defer rows.Close()

	var out []placementlog.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: history for %q: %w", orderID, err)
		}
		out = append(out, *entry)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*placementlog.Entry, error) {
	var entry placementlog.Entry
	var updatedAt string
	err := s.Scan(
		&entry.OrderID,
		&entry.Status,
		&entry.CurrentStep,
		&entry.Payload,
		&entry.ErrorMessages,
		&entry.TraceID,
		&entry.SpanID,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	entry.UpdatedAt, err = parseRFC3339(updatedAt)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}

// nullableString stores NULL instead of '' for payloads on non-STARTED rows.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
