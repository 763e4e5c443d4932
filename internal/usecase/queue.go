package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/ecocoleta/internal/domain/errors"
	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/domain/repository"
)

// QueueUseCase computes role specific work queues. Each call recomputes
// from the store; there is no cursor to carry between calls.
type QueueUseCase struct {
	orders repository.OrderRepository
}

// NewQueueUseCase constructs QueueUseCase.
func NewQueueUseCase(orders repository.OrderRepository) *QueueUseCase {
	return &QueueUseCase{orders: orders}
}

// DefaultQueue returns the queue a role sees when none is named.
func DefaultQueue(role model.Role) (model.QueueName, bool) {
	switch role {
	case model.RoleAgent:
		return model.QueueTriage, true
	case model.RoleDriver:
		return model.QueuePickup, true
	case model.RoleCitizen:
		return model.QueueMine, true
	}
	return "", false
}

// Resolve returns the orders currently in the requested queue.
func (u *QueueUseCase) Resolve(ctx context.Context, req model.QueueRequest) ([]model.Order, error) {
	filter, err := QueueFilter(req)
	if err != nil {
		return nil, err
	}
	orders, err := u.orders.Fetch(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("resolve %s queue: %w", req.Queue, err)
	}
	return orders, nil
}

// QueueFilter translates a queue request into store predicates.
func QueueFilter(req model.QueueRequest) (model.OrderFilter, error) {
	queue := req.Queue
	if queue == "" {
		def, ok := DefaultQueue(req.Role)
		if !ok {
			return model.OrderFilter{}, fmt.Errorf("%w: role %q has no queue", domainErrors.ErrInvalidQueueRequest, req.Role)
		}
		queue = def
	}

	switch {
	case req.Role == model.RoleAgent && queue == model.QueueTriage:
		return model.OrderFilter{Statuses: []model.StatusID{model.StatusAwaitingAnalysis}}, nil
	case req.Role == model.RoleAgent && queue == model.QueueCancelled:
		return model.OrderFilter{
			Statuses:   []model.StatusID{model.StatusCancelled},
			SortBy:     model.SortByCancelledAt,
			Descending: true,
		}, nil
	case req.Role == model.RoleAgent && queue == model.QueueInPerson:
		return model.OrderFilter{Statuses: []model.StatusID{model.StatusScheduledInPerson}}, nil
	case req.Role == model.RoleDriver && queue == model.QueuePickup:
		return model.OrderFilter{Statuses: []model.StatusID{model.StatusScheduledInPerson, model.StatusScheduledTransport}}, nil
	case req.Role == model.RoleCitizen && queue == model.QueueMine:
		if req.RequesterID == uuid.Nil {
			return model.OrderFilter{}, fmt.Errorf("%w: citizen view needs a requester", domainErrors.ErrInvalidQueueRequest)
		}
		return model.OrderFilter{RequesterIDs: []uuid.UUID{req.RequesterID}, Descending: true}, nil
	}

	return model.OrderFilter{}, fmt.Errorf("%w: role %q cannot read queue %q", domainErrors.ErrInvalidQueueRequest, req.Role, queue)
}
