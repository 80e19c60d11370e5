// Package placementlog records every state transition an order placement goes
// through.
//
// Rows are appended, never updated, so the log doubles as an audit trail. The
// trace_id column links a row to the distributed trace of the request that
// placed the order.
package placementlog

import "time"

// Status is the lifecycle state of one placement.
type Status string

const (
	StatusStarted      Status = "STARTED"
	StatusStepDone     Status = "STEP_DONE"
	StatusCompleted    Status = "COMPLETED"
	StatusCompensating Status = "COMPENSATING"
	StatusFailed       Status = "FAILED"
)

// Entry is a single row in the placement_logs table.
type Entry struct {
	// OrderID identifies the placement.
	OrderID string

	Status Status

	// CurrentStep is the name of the step that was just executed or failed.
	CurrentStep string

	// Payload is the JSON-serialised order, written once on STARTED.
	Payload string

	// ErrorMessages is a JSON array of failure details.
	ErrorMessages string

	// TraceID and SpanID come from the OpenTelemetry span active when the
	// entry was written. Both are empty without an active span.
	TraceID string
	SpanID  string

	UpdatedAt time.Time
}
