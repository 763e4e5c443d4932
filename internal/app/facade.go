package app

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/domain/workflow"
	"github.com/polkiloo/ecocoleta/internal/usecase"
)

// CollectionFacade is the single entry point used by the transport and
// background layers.
type CollectionFacade struct {
	auth        *usecase.AuthUseCase
	orders      *usecase.OrderUseCase
	transitions *usecase.TransitionUseCase
	queues      *usecase.QueueUseCase
	lookup      *usecase.LookupUseCase
	staff       *usecase.StaffUseCase
}

type facadeParams struct {
	fx.In

	Auth        *usecase.AuthUseCase
	Orders      *usecase.OrderUseCase
	Transitions *usecase.TransitionUseCase
	Queues      *usecase.QueueUseCase
	Lookup      *usecase.LookupUseCase
	Staff       *usecase.StaffUseCase
}

// NewCollectionFacade constructs CollectionFacade.
func NewCollectionFacade(p facadeParams) *CollectionFacade {
	return &CollectionFacade{
		auth:        p.Auth,
		orders:      p.Orders,
		transitions: p.Transitions,
		queues:      p.Queues,
		lookup:      p.Lookup,
		staff:       p.Staff,
	}
}

func (f *CollectionFacade) Register(ctx context.Context, in model.Registration) (string, error) {
	_, token, err := f.auth.Register(ctx, in)
	return token, err
}

func (f *CollectionFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *CollectionFacade) ParseToken(token string) (model.Actor, error) {
	return f.auth.ParseToken(token)
}

func (f *CollectionFacade) EnsureAdmin(ctx context.Context, email, password string) error {
	return f.auth.EnsureAdmin(ctx, email, password)
}

func (f *CollectionFacade) CreateOrder(ctx context.Context, actor model.Actor, in model.OrderDraft) (*model.Order, error) {
	return f.orders.Create(ctx, actor, in)
}

func (f *CollectionFacade) Order(ctx context.Context, actor model.Actor, number int64) (*model.OrderView, error) {
	return f.orders.Get(ctx, actor, number)
}

func (f *CollectionFacade) History(ctx context.Context, actor model.Actor, number int64) ([]model.TransitionRecord, error) {
	return f.orders.History(ctx, actor, number)
}

func (f *CollectionFacade) Transition(ctx context.Context, actor model.Actor, number int64, target model.StatusID, p workflow.Payload) (*model.Order, error) {
	return f.transitions.Apply(ctx, actor, number, target, p)
}

func (f *CollectionFacade) Queue(ctx context.Context, req model.QueueRequest) ([]model.Order, error) {
	return f.queues.Resolve(ctx, req)
}

// PendingPickups reads the driver queue on behalf of background jobs.
func (f *CollectionFacade) PendingPickups(ctx context.Context) ([]model.Order, error) {
	return f.queues.Resolve(ctx, model.QueueRequest{Role: model.RoleDriver, Queue: model.QueuePickup})
}

func (f *CollectionFacade) Lookup(ctx context.Context, query string) (*model.LookupResult, error) {
	return f.lookup.Lookup(ctx, query)
}

func (f *CollectionFacade) CreateStaff(ctx context.Context, actor model.Actor, in model.StaffAccount) (*model.User, error) {
	return f.staff.Create(ctx, actor, in)
}

func (f *CollectionFacade) Staff(ctx context.Context, actor model.Actor) ([]model.User, error) {
	return f.staff.List(ctx, actor)
}

func (f *CollectionFacade) DeleteStaff(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	return f.staff.Delete(ctx, actor, id)
}
