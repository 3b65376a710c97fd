package services

import (
	"context"
	"errors"
	"log"
	"time"

	"college-cms/internal/adapters/persistence/models"
	"college-cms/internal/core/domain"

	"gorm.io/gorm"
)

// DefaultWorkflowTimeout bounds each persistence call made by a transition.
const DefaultWorkflowTimeout = 5 * time.Second

// PayrollWorkflow is the only mutator of payroll record status. Every
// transition checks its source-state precondition, applies a conditional
// (compare-and-swap) update at the persistence boundary, and publishes a
// transition event strictly after the update has been persisted.
type PayrollWorkflow struct {
	payrollRepo PayrollRepository
	events      TransitionPublisher
	timeout     time.Duration
}

// NewPayrollWorkflow creates a new payroll workflow service.
func NewPayrollWorkflow(payrollRepo PayrollRepository, events TransitionPublisher) *PayrollWorkflow {
	return &PayrollWorkflow{
		payrollRepo: payrollRepo,
		events:      events,
		timeout:     DefaultWorkflowTimeout,
	}
}

// Approve moves a Pending record to Approved.
func (w *PayrollWorkflow) Approve(ctx context.Context, id uint, actorID *uint) (*models.PayrollRecord, error) {
	return w.transition(ctx, id, "approve", domain.StatusPending, domain.StatusApproved, domain.NotifyPayrollApproved, actorID)
}

// MarkPaid moves an Approved record to Paid.
func (w *PayrollWorkflow) MarkPaid(ctx context.Context, id uint, actorID *uint) (*models.PayrollRecord, error) {
	return w.transition(ctx, id, "mark paid", domain.StatusApproved, domain.StatusPaid, domain.NotifyPayrollPaid, actorID)
}

// Cancel moves a Pending or Approved record to Cancelled.
func (w *PayrollWorkflow) Cancel(ctx context.Context, id uint, actorID *uint) (*models.PayrollRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	record, err := w.load(ctx, id)
	if err != nil {
		return nil, err
	}

	from := record.PayrollStatus()
	if from == domain.StatusCancelled {
		return nil, &domain.AlreadyInStateError{Status: from}
	}
	if !domain.CanTransition(from, domain.StatusCancelled) {
		return nil, &domain.InvalidStateTransitionError{Current: from, Operation: "cancel"}
	}

	// Cancellation has no notification type of its own; nothing is published.
	return w.apply(ctx, id, "cancel", from, domain.StatusCancelled, "", actorID, false)
}

// transition runs a single-source-state operation (approve, mark paid).
func (w *PayrollWorkflow) transition(
	ctx context.Context,
	id uint,
	operation string,
	from, to domain.PayrollStatus,
	eventType domain.NotificationType,
	actorID *uint,
) (*models.PayrollRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	record, err := w.load(ctx, id)
	if err != nil {
		return nil, err
	}

	current := record.PayrollStatus()
	if current == to {
		// Re-invoking a satisfied transition fails before any publish, so a
		// transition never produces duplicate notifications.
		return nil, &domain.AlreadyInStateError{Status: current}
	}
	if current != from {
		return nil, &domain.InvalidStateTransitionError{Current: current, Operation: operation}
	}

	return w.apply(ctx, id, operation, from, to, eventType, actorID, true)
}

// apply performs the compare-and-swap update and, on success, reloads the
// record and publishes the transition event.
func (w *PayrollWorkflow) apply(
	ctx context.Context,
	id uint,
	operation string,
	from, to domain.PayrollStatus,
	eventType domain.NotificationType,
	actorID *uint,
	notify bool,
) (*models.PayrollRecord, error) {
	now := time.Now()

	swapped, err := w.payrollRepo.UpdateStatus(ctx, id, from, to, now, actorID)
	if err != nil {
		return nil, err
	}
	if !swapped {
		// Lost the conditional update: some concurrent caller moved the record
		// first. Indistinguishable from a plain precondition failure.
		current := from
		if fresh, loadErr := w.load(ctx, id); loadErr == nil {
			current = fresh.PayrollStatus()
		}
		return nil, &domain.InvalidStateTransitionError{Current: current, Operation: operation}
	}

	record, err := w.load(ctx, id)
	if err != nil {
		return nil, err
	}

	// Publish only after the persisted update succeeded. A failed publish is
	// logged, never propagated: the transition itself did succeed.
	if notify && w.events != nil {
		event := TransitionEvent{
			Type:       eventType,
			Record:     record,
			ActorID:    actorID,
			OccurredAt: now,
		}
		if err := w.events.PublishTransition(event); err != nil {
			log.Printf("⚠️ Failed to publish %s event for payroll %d: %v", eventType, id, err)
		}
	}

	return record, nil
}

func (w *PayrollWorkflow) load(ctx context.Context, id uint) (*models.PayrollRecord, error) {
	record, err := w.payrollRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPayrollNotFound
		}
		return nil, err
	}
	return record, nil
}
