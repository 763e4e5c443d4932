package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/ecocoleta/internal/domain/errors"
	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/domain/repository"
)

// LookupUseCase finds orders by requester tax id or by display number.
type LookupUseCase struct {
	orders repository.OrderRepository
	users  repository.UserRepository
}

// NewLookupUseCase constructs LookupUseCase.
func NewLookupUseCase(orders repository.OrderRepository, users repository.UserRepository) *LookupUseCase {
	return &LookupUseCase{orders: orders, users: users}
}

// Classify decides how a free form query is interpreted. Punctuation is
// ignored, eleven digits mean a tax id and any other digit string is a
// display number.
func Classify(query string) (model.LookupMode, string, error) {
	digits := NormalizeDigits(query)
	switch {
	case digits == "":
		return "", "", fmt.Errorf("%w: %q has no digits", domainErrors.ErrUnsupportedQueryShape, query)
	case len(digits) == TaxIDLength:
		return model.LookupByTaxID, digits, nil
	}
	return model.LookupByNumber, digits, nil
}

// Lookup resolves the query and joins each order with its requester.
func (u *LookupUseCase) Lookup(ctx context.Context, query string) (*model.LookupResult, error) {
	mode, digits, err := Classify(query)
	if err != nil {
		return nil, err
	}

	switch mode {
	case model.LookupByTaxID:
		return u.byTaxID(ctx, digits)
	default:
		return u.byNumber(ctx, digits)
	}
}

func (u *LookupUseCase) byTaxID(ctx context.Context, taxID string) (*model.LookupResult, error) {
	requesters, err := u.users.ListByTaxID(ctx, taxID)
	if err != nil {
		return nil, fmt.Errorf("lookup requester %s: %w", taxID, err)
	}
	if len(requesters) == 0 {
		return nil, domainErrors.ErrNotFound
	}

	ids := make([]uuid.UUID, 0, len(requesters))
	byID := make(map[uuid.UUID]model.User, len(requesters))
	for _, r := range requesters {
		ids = append(ids, r.ID)
		byID[r.ID] = r
	}

	orders, err := u.orders.Fetch(ctx, model.OrderFilter{RequesterIDs: ids, Descending: true})
	if err != nil {
		return nil, fmt.Errorf("lookup orders of %s: %w", taxID, err)
	}
	if len(orders) == 0 {
		return nil, domainErrors.ErrNotFound
	}

	result := &model.LookupResult{Mode: model.LookupByTaxID, Orders: make([]model.OrderView, 0, len(orders))}
	for _, o := range orders {
		result.Orders = append(result.Orders, model.OrderView{Order: o, Requester: requesterOf(byID, o.RequesterID)})
	}
	return result, nil
}

func (u *LookupUseCase) byNumber(ctx context.Context, digits string) (*model.LookupResult, error) {
	number, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a valid order number", domainErrors.ErrUnsupportedQueryShape, digits)
	}

	order, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	users, err := u.users.GetByIDs(ctx, []uuid.UUID{order.RequesterID})
	if err != nil {
		return nil, fmt.Errorf("lookup requester of order %s: %w", order.DisplayNumber(), err)
	}
	byID := make(map[uuid.UUID]model.User, len(users))
	for _, usr := range users {
		byID[usr.ID] = usr
	}

	return &model.LookupResult{
		Mode:   model.LookupByNumber,
		Orders: []model.OrderView{{Order: *order, Requester: requesterOf(byID, order.RequesterID)}},
	}, nil
}

func requesterOf(users map[uuid.UUID]model.User, id uuid.UUID) model.Requester {
	usr, ok := users[id]
	if !ok {
		return model.Requester{ID: id}
	}
	return model.RequesterOf(usr)
}
