package auditlog

import "context"

// Repository is the port for persisting audit entries. The checkout flow
// depends on this abstraction, not on SQLite directly, so tests can record
// entries in memory.
type Repository interface {
	// Save appends a new entry. The log is append-only, never upserted.
	Save(ctx context.Context, entry *Entry) error
}
