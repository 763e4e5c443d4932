package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/domain/workflow"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in model.Registration) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (model.Actor, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, actor model.Actor, in model.OrderDraft) (*model.Order, error)
	Order(ctx context.Context, actor model.Actor, number int64) (*model.OrderView, error)
	History(ctx context.Context, actor model.Actor, number int64) ([]model.TransitionRecord, error)
	Transition(ctx context.Context, actor model.Actor, number int64, target model.StatusID, p workflow.Payload) (*model.Order, error)
}

// QueueFacade serves work queues and search.
type QueueFacade interface {
	Queue(ctx context.Context, req model.QueueRequest) ([]model.Order, error)
	Lookup(ctx context.Context, query string) (*model.LookupResult, error)
}

// StaffFacade manages collaborator accounts.
type StaffFacade interface {
	CreateStaff(ctx context.Context, actor model.Actor, in model.StaffAccount) (*model.User, error)
	Staff(ctx context.Context, actor model.Actor) ([]model.User, error)
	DeleteStaff(ctx context.Context, actor model.Actor, id uuid.UUID) error
}

// CollectionFacade aggregates the full set of operations used across handlers.
type CollectionFacade interface {
	AuthFacade
	OrderFacade
	QueueFacade
	StaffFacade
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
