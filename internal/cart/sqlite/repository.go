// Package sqlite provides a SQLite-backed implementation of cart.Snapshots.
//
// WAL mode is enabled on Open so that readers never block writers and vice
// versa — several sessions persist their carts through the same handle.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jcmexdev/bakehouse-storefront/internal/cart"

	// Register the pure-Go SQLite driver.
	// We use modernc.org/sqlite instead of mattn/go-sqlite3 to avoid CGO
	// requirements, making it easier to build and run in Docker (Alpine).
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. One row per session, always
// holding the latest full snapshot; mutations upsert in place.
const schema = `
CREATE TABLE IF NOT EXISTS cart_snapshots (
    -- Shopping session identifier (the bh_session cookie value).
    session_id  TEXT PRIMARY KEY,

    -- Full cart snapshot (lines + total) as JSON text.
    snapshot    TEXT NOT NULL,

    -- Wall-clock timestamp of the last write (RFC3339 stored as TEXT, SQLite idiom).
    updated_at  TEXT NOT NULL
);
`

// Repository is the SQLite implementation of cart.Snapshots.
type Repository struct {
	db *sql.DB
}

var _ cart.Snapshots = (*Repository)(nil)

// Open opens (or creates) the SQLite database at the given path and applies
// the schema. WAL mode is enabled for better concurrent read/write performance.
//
//	repo, err := sqlite.Open("./storefront.db")
func Open(path string) (*Repository, error) {
	// The pure-Go driver uses _pragma query parameters to configure connection state.
	// WAL enables concurrent readers. busy_timeout waits for locks instead of
	// failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	// Use "sqlite", not "sqlite3" for the modernc driver.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save upserts the snapshot for a session. Safe to call concurrently.
func (r *Repository) Save(ctx context.Context, sessionID string, snap cart.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("sqlite: encode snapshot for %q: %w", sessionID, err)
	}

	const q = `
		INSERT INTO cart_snapshots (session_id, snapshot, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			snapshot   = excluded.snapshot,
			updated_at = excluded.updated_at`

	_, err = r.db.ExecContext(ctx, q,
		sessionID,
		string(raw),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save cart snapshot for %q: %w", sessionID, err)
	}
	return nil
}

// Load returns the persisted snapshot for a session, or (nil, nil) when none
// exists. A row that no longer decodes yields cart.ErrCorruptSnapshot; the
// Store discards it and starts the session with an empty cart.
func (r *Repository) Load(ctx context.Context, sessionID string) (*cart.Snapshot, error) {
	const q = `SELECT snapshot FROM cart_snapshots WHERE session_id = ?`

	var raw string
	err := r.db.QueryRowContext(ctx, q, sessionID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: load cart snapshot for %q: %w", sessionID, err)
	}

	var snap cart.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("%w: session %q: %v", cart.ErrCorruptSnapshot, sessionID, err)
	}
	return &snap, nil
}
