package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/ecocoleta/internal/domain/errors"
	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/domain/repository"
	pkgAuth "github.com/polkiloo/ecocoleta/internal/pkg/auth"
)

// StaffUseCase manages agent and driver accounts.
type StaffUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
}

// NewStaffUseCase constructs StaffUseCase.
func NewStaffUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher) *StaffUseCase {
	return &StaffUseCase{users: users, hasher: hasher}
}

// Create registers a new collaborator.
func (u *StaffUseCase) Create(ctx context.Context, actor model.Actor, in model.StaffAccount) (*model.User, error) {
	if actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrForbidden
	}
	if !in.Role.IsStaff() {
		return nil, fmt.Errorf("%w: role must be agent or driver", domainErrors.ErrInvalidAccount)
	}
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domainErrors.ErrInvalidAccount)
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	return u.users.Create(ctx, model.NewUser{
		Name:         name,
		Email:        email,
		Role:         in.Role,
		PasswordHash: hash,
	})
}

// List returns every collaborator account.
func (u *StaffUseCase) List(ctx context.Context, actor model.Actor) ([]model.User, error) {
	if actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrForbidden
	}
	return u.users.ListStaff(ctx)
}

// Delete removes a collaborator account.
func (u *StaffUseCase) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if actor.Role != model.RoleAdmin {
		return domainErrors.ErrForbidden
	}
	return u.users.Delete(ctx, id)
}
