package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/bakehouse-storefront/internal/catalog"
)

// Validation failures reported to the caller for display. They never escape
// as fatal errors and leave the cart state untouched.
var (
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrStockExceeded   = errors.New("stock exceeded")
)

// Store owns the authoritative cart state for one shopping session.
//
// Every successful mutation persists the full snapshot synchronously before
// the call returns, then notifies subscribers with a copy of the new state.
// Persistence failures are logged and do not fail the mutation.
type Store struct {
	mu        sync.RWMutex
	state     State
	sessionID string
	snapshots Snapshots

	subs    map[int]func(State)
	nextSub int
}

// NewStore creates a Store hydrated from the persisted snapshot for the
// session. A missing or unreadable snapshot yields an empty cart; corruption
// is logged and discarded, never propagated.
func NewStore(ctx context.Context, sessionID string, snapshots Snapshots) *Store {
	s := &Store{
		state:     Reduce(State{}, Clear{}),
		sessionID: sessionID,
		snapshots: snapshots,
		subs:      make(map[int]func(State)),
	}

	snap, err := snapshots.Load(ctx, sessionID)
	if err != nil {
		slog.WarnContext(ctx, "discarding unreadable cart snapshot", "session_id", sessionID, "error", err)
		return s
	}
	if snap != nil {
		s.state = Reduce(s.state, Replace{Lines: snap.Items})
	}
	return s
}

func (s *Store) SessionID() string { return s.sessionID }

// State returns a copy of the current cart state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Lines: slices.Clone(s.state.Lines), Total: s.state.Total}
}

// Total returns the derived cart total. Pure read, no side effects.
func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Total
}

// AddItem puts quantity units of a product in the cart, merging with an
// existing line for the same product.
//
// The stock check runs against the combined quantity (existing + added), not
// just the increment, so repeated small adds cannot walk past the available
// stock.
func (s *Store) AddItem(ctx context.Context, p catalog.Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	current := 0
	if i := findLine(s.state.Lines, p.ID); i >= 0 {
		current = s.state.Lines[i].Quantity
	}
	if current+quantity > p.Stock {
		s.mu.Unlock()
		return fmt.Errorf("%w: only %d units of %q available", ErrStockExceeded, p.Stock, p.ID)
	}

	state, subs := s.apply(ctx, AddItem{Product: p, Quantity: quantity})
	s.mu.Unlock()

	notify(subs, state)
	return nil
}

// RemoveItem drops the line for a product. An absent ID is a silent no-op,
// not an error, and causes no persistence write.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	if findLine(s.state.Lines, productID) < 0 {
		s.mu.Unlock()
		return
	}

	state, subs := s.apply(ctx, RemoveItem{ProductID: productID})
	s.mu.Unlock()

	notify(subs, state)
}

// UpdateQuantity replaces a line's quantity in place, leaving its position in
// the sequence unchanged. A quantity <= 0 behaves exactly like RemoveItem.
// The stock check uses the stock embedded in the line's product snapshot.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		s.RemoveItem(ctx, productID)
		return nil
	}

	s.mu.Lock()
	i := findLine(s.state.Lines, productID)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	if quantity > s.state.Lines[i].Product.Stock {
		available := s.state.Lines[i].Product.Stock
		s.mu.Unlock()
		return fmt.Errorf("%w: only %d units of %q available", ErrStockExceeded, available, productID)
	}

	state, subs := s.apply(ctx, SetQuantity{ProductID: productID, Quantity: quantity})
	s.mu.Unlock()

	notify(subs, state)
	return nil
}

// Clear empties the cart unconditionally and persists the empty snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	state, subs := s.apply(ctx, Clear{})
	s.mu.Unlock()

	notify(subs, state)
}

// Subscribe registers an observer called with a state copy after every
// mutation. The returned function cancels the subscription; calling it more
// than once is safe.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// apply dispatches the action, persists the new snapshot synchronously, and
// returns a state copy plus the subscriber list. Caller must hold s.mu.
func (s *Store) apply(ctx context.Context, a Action) (State, []func(State)) {
	s.state = Reduce(s.state, a)

	snap := Snapshot{Items: slices.Clone(s.state.Lines), Total: s.state.Total}
	if err := s.snapshots.Save(ctx, s.sessionID, snap); err != nil {
		slog.WarnContext(ctx, "cart snapshot write failed", "session_id", s.sessionID, "error", err)
	}

	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return State{Lines: slices.Clone(s.state.Lines), Total: s.state.Total}, subs
}

// notify runs outside the store lock so observers may call back into the store.
func notify(subs []func(State), state State) {
	for _, fn := range subs {
		fn(state)
	}
}
