package placement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jcmexdev/warung-orders/internal/placement/placementlog"
)

// Step is one unit of work in a placement. Compensate undoes Execute.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Orchestrator runs steps in order and rolls back completed steps in reverse
// order when one fails.
type Orchestrator struct {
	orderID string
	payload string
	steps   []Step
	logRepo placementlog.Repository
}

type OrchestratorOption func(*Orchestrator)

// WithPayload sets the JSON stored on the STARTED log entry.
func WithPayload(payload string) OrchestratorOption {
	return func(o *Orchestrator) { o.payload = payload }
}

// NewOrchestrator builds an orchestrator for one order. logRepo may be nil.
func NewOrchestrator(orderID string, steps []Step, logRepo placementlog.Repository, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{orderID: orderID, steps: steps, logRepo: logRepo}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start runs the steps sequentially. If a step fails, every step that already
// succeeded is compensated and the step's error is returned.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.record(ctx, placementlog.StatusStarted, "", o.payload, nil)

	var done []Step
	for _, step := range o.steps {
		slog.DebugContext(ctx, "executing placement step", "order_id", o.orderID, "step", step.Name())
		if err := step.Execute(ctx); err != nil {
			slog.ErrorContext(ctx, "placement step failed, rolling back",
				"order_id", o.orderID, "step", step.Name(), "error", err)

			// Rollback must finish even if the caller has gone away.
			rbCtx := context.WithoutCancel(ctx)
			errs := []string{fmt.Sprintf("step %s failed: %v", step.Name(), err)}
			o.record(rbCtx, placementlog.StatusCompensating, step.Name(), "", errs)
			errs = append(errs, o.rollback(rbCtx, done)...)
			o.record(rbCtx, placementlog.StatusFailed, step.Name(), "", errs)

			return fmt.Errorf("placement step %s: %w", step.Name(), err)
		}
		done = append(done, step)
		o.record(ctx, placementlog.StatusStepDone, step.Name(), "", nil)
	}

	o.record(ctx, placementlog.StatusCompleted, "", "", nil)
	slog.InfoContext(ctx, "order placed", "order_id", o.orderID)
	return nil
}

func (o *Orchestrator) rollback(ctx context.Context, steps []Step) []string {
	var errs []string
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		slog.InfoContext(ctx, "compensating placement step", "order_id", o.orderID, "step", step.Name())
		if err := step.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "CRITICAL: failed to compensate placement step",
				"order_id", o.orderID, "step", step.Name(), "error", err)
			errs = append(errs, fmt.Sprintf("compensation of %s failed: %v", step.Name(), err))
		}
	}
	return errs
}

// record never fails the placement; log write errors are only logged.
func (o *Orchestrator) record(ctx context.Context, status placementlog.Status, step, payload string, errs []string) {
	if o.logRepo == nil {
		return
	}
	entry := placementlog.NewEntry(ctx, o.orderID, status, step, payload, errs)
	if err := o.logRepo.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to write placement log", "order_id", o.orderID, "status", status, "error", err)
	}
}
