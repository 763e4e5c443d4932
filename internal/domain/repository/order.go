package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/ecocoleta/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.NewOrder) (*model.Order, error)
	GetByNumber(ctx context.Context, number int64) (*model.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	// Fetch returns orders matching every non-empty predicate of the filter.
	Fetch(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	// Update applies the patch only if the stored version still equals
	// expectedVersion and appends the audit record in the same transaction.
	// It returns errors.ErrConflict when the version moved.
	Update(ctx context.Context, id uuid.UUID, expectedVersion int64, patch model.OrderPatch, record model.TransitionRecord) (*model.Order, error)
	History(ctx context.Context, orderID uuid.UUID) ([]model.TransitionRecord, error)
}
