package test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/domain/workflow"
)

// PickupSourceStub returns a fixed driver queue and counts calls.
type PickupSourceStub struct {
	Orders []model.Order
	Err    error

	mu    sync.Mutex
	calls int
}

// PendingPickups returns the configured orders.
func (s *PickupSourceStub) PendingPickups(ctx context.Context) ([]model.Order, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Orders, nil
}

// Calls reports how many times the queue was read.
func (s *PickupSourceStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// GaugeStub stores the last published overdue count.
type GaugeStub struct {
	mu    sync.Mutex
	value int
}

// SetOverduePickups stores n.
func (g *GaugeStub) SetOverduePickups(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.value = n
}

// Value returns the last stored count.
func (g *GaugeStub) Value() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, model.Registration) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (model.Actor, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, in model.Registration) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken returns the configured actor.
func (s AuthFacadeStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return model.Actor{ID: uuid.New(), Role: model.RoleCitizen}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn     func(context.Context, model.Actor, model.OrderDraft) (*model.Order, error)
	OrderFn      func(context.Context, model.Actor, int64) (*model.OrderView, error)
	HistoryFn    func(context.Context, model.Actor, int64) ([]model.TransitionRecord, error)
	TransitionFn func(context.Context, model.Actor, int64, model.StatusID, workflow.Payload) (*model.Order, error)
}

// CreateOrder delegates to provided function or echoes a new order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, actor model.Actor, in model.OrderDraft) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, in)
	}
	return &model.Order{Number: 1, RequesterID: actor.ID, ServiceType: in.ServiceType, Status: model.StatusAwaitingAnalysis}, nil
}

// Order returns the configured order view.
func (s OrderFacadeStub) Order(ctx context.Context, actor model.Actor, number int64) (*model.OrderView, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, actor, number)
	}
	return &model.OrderView{Order: model.Order{Number: number, Status: model.StatusAwaitingAnalysis}}, nil
}

// History returns the configured audit trail.
func (s OrderFacadeStub) History(ctx context.Context, actor model.Actor, number int64) ([]model.TransitionRecord, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, actor, number)
	}
	return nil, nil
}

// Transition applies the configured transition behaviour.
func (s OrderFacadeStub) Transition(ctx context.Context, actor model.Actor, number int64, target model.StatusID, p workflow.Payload) (*model.Order, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, actor, number, target, p)
	}
	return &model.Order{Number: number, Status: target}, nil
}

// QueueFacadeStub simulates queue and lookup reads.
type QueueFacadeStub struct {
	QueueFn  func(context.Context, model.QueueRequest) ([]model.Order, error)
	LookupFn func(context.Context, string) (*model.LookupResult, error)
}

// Queue returns configured orders.
func (s QueueFacadeStub) Queue(ctx context.Context, req model.QueueRequest) ([]model.Order, error) {
	if s.QueueFn != nil {
		return s.QueueFn(ctx, req)
	}
	return nil, nil
}

// Lookup returns configured result.
func (s QueueFacadeStub) Lookup(ctx context.Context, query string) (*model.LookupResult, error) {
	if s.LookupFn != nil {
		return s.LookupFn(ctx, query)
	}
	return &model.LookupResult{Mode: model.LookupByNumber}, nil
}

// StaffFacadeStub simulates staff administration.
type StaffFacadeStub struct {
	CreateFn func(context.Context, model.Actor, model.StaffAccount) (*model.User, error)
	ListFn   func(context.Context, model.Actor) ([]model.User, error)
	DeleteFn func(context.Context, model.Actor, uuid.UUID) error
}

// CreateStaff returns the configured account.
func (s StaffFacadeStub) CreateStaff(ctx context.Context, actor model.Actor, in model.StaffAccount) (*model.User, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, in)
	}
	return &model.User{ID: uuid.New(), Name: in.Name, Email: in.Email, Role: in.Role}, nil
}

// Staff returns the configured accounts.
func (s StaffFacadeStub) Staff(ctx context.Context, actor model.Actor) ([]model.User, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, actor)
	}
	return nil, nil
}

// DeleteStaff runs the configured deletion.
func (s StaffFacadeStub) DeleteStaff(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, actor, id)
	}
	return nil
}

// CollectionFacadeStub aggregates facade dependencies for HTTP layer tests.
type CollectionFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	QueueFacadeStub
	StaffFacadeStub
}
