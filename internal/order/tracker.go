package order

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultPollInterval matches the storefront's order tracking cadence.
const DefaultPollInterval = 30 * time.Second

// StatusSource is the read port the tracker polls.
type StatusSource interface {
	Status(ctx context.Context, orderID string) (Status, error)
}

// Tracker polls an order's status at a fixed interval and delivers changes
// on Updates. It is owned by the view that displays the order: the view must
// call Stop on teardown, which cancels the loop deterministically. A poll
// response that lands after Stop is discarded, never delivered.
type Tracker struct {
	updates chan Status
	cancel  context.CancelFunc
	stop    sync.Once
	done    chan struct{}
}

// Track starts polling. The first poll fires immediately, then every
// interval (DefaultPollInterval when interval <= 0). The loop ends on Stop,
// on context cancellation, or by itself once the status is terminal; in all
// cases Updates is closed.
func Track(ctx context.Context, src StatusSource, orderID string, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	t := &Tracker{
		updates: make(chan Status, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go t.run(ctx, src, orderID, interval)
	return t
}

// Updates delivers each status change, including the first observed status.
// The channel is closed when tracking ends.
func (t *Tracker) Updates() <-chan Status { return t.updates }

// Done is closed once the polling loop has fully exited.
func (t *Tracker) Done() <-chan struct{} { return t.done }

// Stop cancels the polling loop. Safe to call any number of times, including
// after the tracker already stopped itself on a terminal status.
func (t *Tracker) Stop() {
	t.stop.Do(t.cancel)
}

func (t *Tracker) run(ctx context.Context, src StatusSource, orderID string, interval time.Duration) {
	defer close(t.done)
	defer close(t.updates)
	defer t.Stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last Status
	for {
		status, err := src.Status(ctx, orderID)
		switch {
		case ctx.Err() != nil:
			// The view was torn down while this poll was in flight; the
			// response is abandoned.
			return
		case err != nil:
			slog.WarnContext(ctx, "order status poll failed", "order_id", orderID, "error", err)
		case status != last:
			last = status
			select {
			case t.updates <- status:
			case <-ctx.Done():
				return
			}
		}

		if last.Terminal() {
			return
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
