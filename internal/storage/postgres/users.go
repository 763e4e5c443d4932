package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/ecocoleta/internal/domain/errors"
	"github.com/polkiloo/ecocoleta/internal/domain/model"
)

const (
	userColumns = `id, name, email, COALESCE(tax_id, ''), phone, street, house_number, district, city, state, postal_code,
                   role, password_hash, created_at`

	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var newUserID = uuid.New

type userRepository struct {
	storage *Storage
}

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	a := &u.Address
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.TaxID, &u.Phone, &a.Street, &a.Number, &a.District, &a.City,
		&a.State, &a.PostalCode, &u.Role, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func (r *userRepository) Create(ctx context.Context, in model.NewUser) (*model.User, error) {
	ctx, cancel := r.storage.bound(ctx)
	defer cancel()

	const query = `INSERT INTO users (id, name, email, tax_id, phone, street, house_number, district, city, state,
                                     postal_code, role, password_hash)
                   VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING created_at`
	u := model.User{
		ID:           newUserID(),
		Name:         in.Name,
		Email:        in.Email,
		TaxID:        in.TaxID,
		Phone:        in.Phone,
		Address:      in.Address,
		Role:         in.Role,
		PasswordHash: in.PasswordHash,
	}
	a := u.Address
	err := r.storage.pool.QueryRow(ctx, query, u.ID, u.Name, u.Email, u.TaxID, u.Phone, a.Street, a.Number, a.District,
		a.City, a.State, a.PostalCode, string(u.Role), u.PasswordHash).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email)=lower($1)`, email)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	ctx, cancel := r.storage.bound(ctx)
	defer cancel()

	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
}

func (r *userRepository) ListByTaxID(ctx context.Context, taxID string) ([]model.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE tax_id=$1 ORDER BY created_at`, taxID)
}

func (r *userRepository) ListStaff(ctx context.Context) ([]model.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE role IN ('agent', 'driver') ORDER BY created_at`)
}

func (r *userRepository) list(ctx context.Context, query string, args ...any) ([]model.User, error) {
	ctx, cancel := r.storage.bound(ctx)
	defer cancel()

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a staff account. Citizens and admins are never deleted here.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.storage.bound(ctx)
	defer cancel()

	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM users WHERE id=$1 AND role IN ('agent', 'driver')`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
