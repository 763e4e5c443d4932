package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	domainErrors "github.com/polkiloo/ecocoleta/internal/domain/errors"
	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/domain/repository"
)

const (
	maxDescriptionLength = 2000
	maxMessageLength     = 1000
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders repository.OrderRepository
	users  repository.UserRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, users repository.UserRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, users: users}
}

// Create opens a new order in Awaiting Analysis on behalf of the citizen.
func (u *OrderUseCase) Create(ctx context.Context, actor model.Actor, in model.OrderDraft) (*model.Order, error) {
	if actor.Role != model.RoleCitizen {
		return nil, domainErrors.ErrForbidden
	}
	if err := validateOrderInput(in); err != nil {
		return nil, err
	}

	return u.orders.Create(ctx, model.NewOrder{
		RequesterID:   actor.ID,
		ServiceType:   in.ServiceType,
		EquipmentType: in.EquipmentType,
		Description:   strings.TrimSpace(in.Description),
		PhotoURL:      optional(in.PhotoURL),
		Message:       optional(in.Message),
	})
}

// Get returns the order with its requester. Citizens only see their own
// orders; anything else reads as missing.
func (u *OrderUseCase) Get(ctx context.Context, actor model.Actor, number int64) (*model.OrderView, error) {
	order, err := u.visible(ctx, actor, number)
	if err != nil {
		return nil, err
	}

	view := &model.OrderView{Order: *order}
	requester, err := u.users.GetByID(ctx, order.RequesterID)
	switch {
	case err == nil:
		view.Requester = model.RequesterOf(*requester)
	case errors.Is(err, domainErrors.ErrNotFound):
		view.Requester = model.Requester{ID: order.RequesterID}
	default:
		return nil, fmt.Errorf("load requester of order %s: %w", order.DisplayNumber(), err)
	}
	return view, nil
}

// History returns the audit trail of the order, oldest first.
func (u *OrderUseCase) History(ctx context.Context, actor model.Actor, number int64) ([]model.TransitionRecord, error) {
	order, err := u.visible(ctx, actor, number)
	if err != nil {
		return nil, err
	}
	return u.orders.History(ctx, order.ID)
}

func (u *OrderUseCase) visible(ctx context.Context, actor model.Actor, number int64) (*model.Order, error) {
	order, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	switch {
	case actor.Role.IsStaff():
		return order, nil
	case actor.Role == model.RoleCitizen && order.RequesterID == actor.ID:
		return order, nil
	}
	return nil, domainErrors.ErrNotFound
}

func validateOrderInput(in model.OrderDraft) error {
	if !in.ServiceType.Valid() {
		return fmt.Errorf("%w: unknown service type %q", domainErrors.ErrInvalidOrder, in.ServiceType)
	}
	if !in.EquipmentType.Valid() {
		return fmt.Errorf("%w: unknown equipment type %q", domainErrors.ErrInvalidOrder, in.EquipmentType)
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return fmt.Errorf("%w: description is required", domainErrors.ErrInvalidOrder)
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return fmt.Errorf("%w: description is too long", domainErrors.ErrInvalidOrder)
	}
	if utf8.RuneCountInString(in.Message) > maxMessageLength {
		return fmt.Errorf("%w: message is too long", domainErrors.ErrInvalidOrder)
	}
	if photo := strings.TrimSpace(in.PhotoURL); photo != "" {
		parsed, err := url.Parse(photo)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return fmt.Errorf("%w: photo must be an http(s) url", domainErrors.ErrInvalidOrder)
		}
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
