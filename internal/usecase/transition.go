package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/ecocoleta/internal/domain/errors"
	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/domain/repository"
	"github.com/polkiloo/ecocoleta/internal/domain/workflow"
)

// Transition outcomes reported to the recorder.
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
	OutcomeFailed   = "failed"
)

// conditional writes are retried once against a fresh read
const maxTransitionAttempts = 2

// TransitionRecorder receives one observation per transition attempt.
type TransitionRecorder interface {
	ObserveTransition(from, to model.StatusID, role model.Role, outcome string)
}

// TransitionUseCase runs the workflow engine against stored orders.
type TransitionUseCase struct {
	orders   repository.OrderRepository
	recorder TransitionRecorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewTransitionUseCase constructs TransitionUseCase.
func NewTransitionUseCase(orders repository.OrderRepository, recorder TransitionRecorder, logger *slog.Logger) *TransitionUseCase {
	return &TransitionUseCase{
		orders:   orders,
		recorder: recorder,
		logger:   logger.With("component", "transition"),
		now:      time.Now,
	}
}

// Apply moves the order with the given display number to target. Every
// precondition is checked against a fresh read and the write only lands if
// nobody changed the order in between. A lost race is retried once.
func (u *TransitionUseCase) Apply(ctx context.Context, actor model.Actor, number int64, target model.StatusID, p workflow.Payload) (*model.Order, error) {
	var lastErr error
	for attempt := 1; attempt <= maxTransitionAttempts; attempt++ {
		order, err := u.orders.GetByNumber(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("load order %s: %w", model.FormatNumber(number), err)
		}

		_, patch, err := workflow.Apply(*order, actor.Role, target, p, u.now())
		if err != nil {
			u.recorder.ObserveTransition(order.Status, target, actor.Role, OutcomeRejected)
			if errors.Is(err, domainErrors.ErrUnknownStatus) {
				u.logger.Error("transition to unknown status requested", "order", order.DisplayNumber(), "target", int16(target), "role", actor.Role)
			}
			return nil, err
		}

		record := model.TransitionRecord{
			OrderID:       order.ID,
			From:          order.Status,
			To:            target,
			ActorID:       actor.ID,
			ActorRole:     actor.Role,
			Annotation:    annotationOf(patch, actor.Role),
			ScheduledDate: patch.ScheduledDate,
			Shift:         patch.Shift,
		}

		updated, err := u.orders.Update(ctx, order.ID, order.Version, patch, record)
		if err == nil {
			u.recorder.ObserveTransition(order.Status, target, actor.Role, OutcomeApplied)
			u.logger.Info("order transitioned",
				"order", order.DisplayNumber(),
				"from", order.Status.Code(),
				"to", target.Code(),
				"role", actor.Role,
			)
			return updated, nil
		}

		if errors.Is(err, domainErrors.ErrConflict) {
			u.recorder.ObserveTransition(order.Status, target, actor.Role, OutcomeConflict)
			u.logger.Warn("concurrent update detected", "order", order.DisplayNumber(), "attempt", attempt)
			lastErr = err
			continue
		}

		u.recorder.ObserveTransition(order.Status, target, actor.Role, OutcomeFailed)
		u.logger.Error("store rejected transition", "order", order.DisplayNumber(), "to", target.Code(), "error", err)
		return nil, fmt.Errorf("transition order %s to %s: %w", order.DisplayNumber(), target, err)
	}

	return nil, fmt.Errorf("transition order %s to %s: %w", model.FormatNumber(number), target, lastErr)
}

func annotationOf(patch model.OrderPatch, role model.Role) string {
	note := patch.AgentNote
	if role == model.RoleDriver {
		note = patch.DriverNote
	}
	if note == nil {
		return ""
	}
	return *note
}

// NopRecorder discards transition observations.
type NopRecorder struct{}

func (NopRecorder) ObserveTransition(model.StatusID, model.StatusID, model.Role, string) {}
