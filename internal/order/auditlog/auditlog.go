// Package auditlog defines a durable trail of checkout attempts.
//
// Every submission to the order collaborator writes one entry per outcome,
// so a failed or lost order can be reconstructed from the local log and
// correlated with a distributed trace via the trace_id field.
package auditlog

import "time"

// Outcome classifies how a checkout attempt ended.
type Outcome string

const (
	// OutcomeSubmitted is written just before the order leaves the process.
	OutcomeSubmitted Outcome = "SUBMITTED"

	// OutcomeAccepted means the collaborator returned a server-assigned ID.
	OutcomeAccepted Outcome = "ACCEPTED"

	// OutcomeBusy is the collaborator's overload signal (HTTP 400).
	OutcomeBusy Outcome = "BUSY"

	// OutcomeFailed covers every other submission failure.
	OutcomeFailed Outcome = "FAILED"
)

// Entry is a single row in the checkout_audit table.
type Entry struct {
	// SessionID identifies the shopping session that attempted checkout.
	SessionID string

	// OrderID is the server-assigned identifier; empty until accepted.
	OrderID string

	// Outcome is the attempt's classification.
	Outcome Outcome

	// Detail carries the failure reason, empty on success.
	Detail string

	// Total is the submitted order total.
	Total float64

	// TraceID and SpanID come from the OpenTelemetry span active when the
	// entry was written, linking the row to the full distributed trace.
	TraceID string
	SpanID  string

	// CreatedAt is the wall-clock time of this entry.
	CreatedAt time.Time
}
