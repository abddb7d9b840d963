package cart

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
)

// ErrCorruptSnapshot marks persisted cart data that could not be decoded.
// The Store logs it and falls back to an empty cart; it is never surfaced
// to the user as an error.
var ErrCorruptSnapshot = errors.New("corrupt cart snapshot")

// Snapshot is the serialized form of a cart, one per session.
type Snapshot struct {
	Items []Line          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Snapshots is the port for cart persistence. The Store depends on this
// abstraction, not on SQLite directly, so tests can use the in-memory
// implementation.
type Snapshots interface {
	// Load returns the persisted snapshot for a session, or (nil, nil) when
	// none exists. Undecodable data yields an error wrapping ErrCorruptSnapshot.
	Load(ctx context.Context, sessionID string) (*Snapshot, error)

	// Save overwrites the snapshot for a session.
	Save(ctx context.Context, sessionID string, snap Snapshot) error
}

type memorySnapshots struct {
	mu   sync.RWMutex
	byID map[string]Snapshot
}

// NewMemorySnapshots returns a process-local Snapshots implementation, used
// in tests and as the fallback when no database path is configured.
func NewMemorySnapshots() Snapshots {
	return &memorySnapshots{byID: make(map[string]Snapshot)}
}

func (m *memorySnapshots) Load(ctx context.Context, sessionID string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.byID[sessionID]
	if !ok {
		return nil, nil
	}
	snap.Items = slices.Clone(snap.Items)
	return &snap, nil
}

func (m *memorySnapshots) Save(ctx context.Context, sessionID string, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap.Items = slices.Clone(snap.Items)
	m.byID[sessionID] = snap
	return nil
}
