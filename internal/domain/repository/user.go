package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/ecocoleta/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user model.NewUser) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
	ListByTaxID(ctx context.Context, taxID string) ([]model.User, error)
	ListStaff(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
