package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/ecocoleta/internal/domain/errors"
	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/domain/repository"
	pkgAuth "github.com/polkiloo/ecocoleta/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a citizen account and returns auth token.
func (u *AuthUseCase) Register(ctx context.Context, in model.Registration) (*model.User, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, "", fmt.Errorf("%w: name is required", domainErrors.ErrInvalidAccount)
	}
	if !ValidateTaxID(in.TaxID) {
		return nil, "", domainErrors.ErrInvalidTaxID
	}
	phone, ok := NormalizePhone(in.Phone)
	if !ok {
		return nil, "", fmt.Errorf("%w: phone must have area code and 8 or 9 digits", domainErrors.ErrInvalidAccount)
	}
	address, err := NormalizeAddress(in.Address)
	if err != nil {
		return nil, "", err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, model.NewUser{
		Name:         name,
		Email:        email,
		TaxID:        NormalizeDigits(in.TaxID),
		Phone:        phone,
		Address:      address,
		Role:         model.RoleCitizen,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken resolves the caller carried by the token.
func (u *AuthUseCase) ParseToken(token string) (model.Actor, error) {
	if token == "" {
		return model.Actor{}, pkgAuth.ErrInvalidToken
	}
	id, err := u.tokens.ParseToken(token)
	if err != nil {
		return model.Actor{}, err
	}
	role := model.Role(id.Role)
	if !role.Valid() || id.UserID == uuid.Nil {
		return model.Actor{}, pkgAuth.ErrInvalidToken
	}
	return model.Actor{ID: id.UserID, Role: role}, nil
}

// EnsureAdmin seeds the administrator account. An empty e-mail disables seeding.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}
	if password == "" {
		return fmt.Errorf("%w: admin password is required when an admin e-mail is configured", domainErrors.ErrInvalidAccount)
	}

	existing, err := u.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != model.RoleAdmin {
			return fmt.Errorf("%w: %s belongs to a %s account", domainErrors.ErrAlreadyExists, email, existing.Role)
		}
		return nil
	case !errors.Is(err, domainErrors.ErrNotFound):
		return err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}
	_, err = u.users.Create(ctx, model.NewUser{
		Name:         "Administrator",
		Email:        email,
		Role:         model.RoleAdmin,
		PasswordHash: hash,
	})
	if errors.Is(err, domainErrors.ErrAlreadyExists) {
		return nil
	}
	return err
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

func (u *AuthUseCase) issue(usr *model.User) (string, error) {
	return u.tokens.IssueToken(pkgAuth.Identity{UserID: usr.ID, Role: string(usr.Role)})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
