// Package sqlite provides a SQLite-backed implementation of auditlog.Repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jcmexdev/bakehouse-storefront/internal/order/auditlog"

	// Register the pure-Go SQLite driver ("sqlite", not "sqlite3").
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. The table is append-only: each
// row is an immutable event in a checkout attempt's lifecycle.
const schema = `
CREATE TABLE IF NOT EXISTS checkout_audit (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Shopping session that attempted the checkout.
    session_id  TEXT NOT NULL,

    -- Server-assigned order ID. Empty until the collaborator accepted.
    order_id    TEXT NOT NULL DEFAULT '',

    -- SUBMITTED / ACCEPTED / BUSY / FAILED.
    outcome     TEXT NOT NULL,

    -- Failure reason, empty on success.
    detail      TEXT NOT NULL DEFAULT '',

    -- Submitted order total.
    total       REAL NOT NULL DEFAULT 0,

    -- W3C trace/span ids from the active OTel span, for trace correlation.
    trace_id    TEXT NOT NULL DEFAULT '',
    span_id     TEXT NOT NULL DEFAULT '',

    -- Wall-clock timestamp (RFC3339 stored as TEXT, SQLite idiom).
    created_at  TEXT NOT NULL
);

-- Index for the most common query: "show me this session's attempts in order".
CREATE INDEX IF NOT EXISTS idx_checkout_audit_session ON checkout_audit(session_id, created_at);
`

// Repository is the SQLite implementation of auditlog.Repository.
type Repository struct {
	db *sql.DB
}

var _ auditlog.Repository = (*Repository)(nil)

// Open opens (or creates) the SQLite database at the given path and applies
// the schema. WAL mode is enabled for better concurrent read/write performance.
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

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

// Save inserts a new audit entry. It is safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *auditlog.Entry) error {
	const q = `
		INSERT INTO checkout_audit
			(session_id, order_id, outcome, detail, total, trace_id, span_id, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.SessionID,
		entry.OrderID,
		string(entry.Outcome),
		entry.Detail,
		entry.Total,
		entry.TraceID,
		entry.SpanID,
		entry.CreatedAt.UTC().Format("2006-01-02T15:04:05.999999999Z"),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save audit entry for %q: %w", entry.SessionID, err)
	}
	return nil
}
