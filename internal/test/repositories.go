package test

import (
	"cmp"
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/ecocoleta/internal/domain/errors"
	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[uuid.UUID]*model.User
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{Users: make(map[uuid.UUID]*model.User)}
}

// Add stores a ready made user and returns it.
func (s *UserRepositoryStub) Add(u model.User) *model.User {
	if s.Users == nil {
		s.Users = make(map[uuid.UUID]*model.User)
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.Users[u.ID] = &u
	return &u
}

// Create registers user unless the e-mail is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, in model.NewUser) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.Users {
		if u.Email == in.Email {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	return s.Add(model.User{
		Name:         in.Name,
		Email:        in.Email,
		TaxID:        in.TaxID,
		Phone:        in.Phone,
		Address:      in.Address,
		Role:         in.Role,
		PasswordHash: in.PasswordHash,
		CreatedAt:    time.Now(),
	}), nil
}

// GetByEmail fetches user by e-mail or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByIDs returns the known users among ids.
func (s *UserRepositoryStub) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.User
	for _, id := range ids {
		if u, ok := s.Users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

// ListByTaxID returns users sharing the normalized tax id.
func (s *UserRepositoryStub) ListByTaxID(ctx context.Context, taxID string) ([]model.User, error) {
	return s.filter(func(u *model.User) bool { return u.TaxID == taxID })
}

// ListStaff returns agents and drivers.
func (s *UserRepositoryStub) ListStaff(ctx context.Context) ([]model.User, error) {
	return s.filter(func(u *model.User) bool { return u.Role.IsStaff() })
}

// Delete removes a staff account.
func (s *UserRepositoryStub) Delete(ctx context.Context, id uuid.UUID) error {
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.Users[id]
	if !ok || !u.Role.IsStaff() {
		return domainErrors.ErrNotFound
	}
	delete(s.Users, id)
	return nil
}

func (s *UserRepositoryStub) filter(keep func(*model.User) bool) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.User
	for _, u := range s.Users {
		if keep(u) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// OrderRepositoryStub is an in-memory order store honouring version checks.
// The *Fn fields override individual operations.
type OrderRepositoryStub struct {
	mu      sync.Mutex
	orders  map[uuid.UUID]*model.Order
	history map[uuid.UUID][]model.TransitionRecord
	next    int64

	CreateFn func(context.Context, model.NewOrder) (*model.Order, error)
	FetchFn  func(context.Context, model.OrderFilter) ([]model.Order, error)
	UpdateFn func(context.Context, uuid.UUID, int64, model.OrderPatch, model.TransitionRecord) (*model.Order, error)
	Err      error

	Filters     []model.OrderFilter
	UpdateCalls int
}

var _ repository.OrderRepository = (*OrderRepositoryStub)(nil)

// NewOrderRepositoryStub constructs an empty store.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{
		orders:  make(map[uuid.UUID]*model.Order),
		history: make(map[uuid.UUID][]model.TransitionRecord),
	}
}

// Put stores an order as-is, assigning id, number and version when missing.
func (s *OrderRepositoryStub) Put(o model.Order) *model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Number == 0 {
		s.next++
		o.Number = s.next
	} else if o.Number > s.next {
		s.next = o.Number
	}
	if o.Version == 0 {
		o.Version = 1
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	s.orders[o.ID] = &o
	copied := o
	return &copied
}

// Bump simulates a concurrent writer by moving the stored version forward.
func (s *OrderRepositoryStub) Bump(id uuid.UUID, mutate func(*model.Order)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[id]; ok {
		if mutate != nil {
			mutate(o)
		}
		o.Version++
	}
}

// Create stores a new order in the initial status.
func (s *OrderRepositoryStub) Create(ctx context.Context, in model.NewOrder) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, in)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Put(model.Order{
		RequesterID:   in.RequesterID,
		ServiceType:   in.ServiceType,
		EquipmentType: in.EquipmentType,
		Description:   in.Description,
		PhotoURL:      in.PhotoURL,
		Message:       in.Message,
		Status:        model.StatusAwaitingAnalysis,
	}), nil
}

// GetByNumber returns a copy of the order with the display number.
func (s *OrderRepositoryStub) GetByNumber(ctx context.Context, number int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.Number == number {
			copied := *o
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID returns a copy of the order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Fetch applies the filter predicates and ordering in memory.
func (s *OrderRepositoryStub) Fetch(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	s.mu.Lock()
	s.Filters = append(s.Filters, filter)
	s.mu.Unlock()
	if s.FetchFn != nil {
		return s.FetchFn(ctx, filter)
	}
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.orders {
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, o.Status) {
			continue
		}
		if len(filter.RequesterIDs) > 0 && !containsID(filter.RequesterIDs, o.RequesterID) {
			continue
		}
		out = append(out, *o)
	}

	slices.SortFunc(out, func(a, b model.Order) int {
		var c int
		if filter.SortBy == model.SortByCancelledAt {
			c = timeOrZero(a.CancelledAt).Compare(timeOrZero(b.CancelledAt))
		} else {
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if c == 0 {
			c = cmp.Compare(a.Number, b.Number)
		}
		if filter.Descending {
			return -c
		}
		return c
	})
	return out, nil
}

// Update applies the patch when the version matches and appends the record.
func (s *OrderRepositoryStub) Update(ctx context.Context, id uuid.UUID, expectedVersion int64, patch model.OrderPatch, record model.TransitionRecord) (*model.Order, error) {
	s.mu.Lock()
	s.UpdateCalls++
	s.mu.Unlock()
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, expectedVersion, patch, record)
	}
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if o.Version != expectedVersion {
		return nil, domainErrors.ErrConflict
	}
	o.Status = patch.Status
	o.AgentNote = patch.AgentNote
	o.DriverNote = patch.DriverNote
	o.ScheduledDate = patch.ScheduledDate
	o.Shift = patch.Shift
	o.CancelledAt = patch.CancelledAt
	o.UpdatedAt = time.Now()
	o.Version++

	record.ID = int64(len(s.history[id]) + 1)
	record.CreatedAt = time.Now()
	s.history[id] = append(s.history[id], record)

	copied := *o
	return &copied, nil
}

// History returns audit records of the order in insertion order.
func (s *OrderRepositoryStub) History(ctx context.Context, orderID uuid.UUID) ([]model.TransitionRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.TransitionRecord(nil), s.history[orderID]...), nil
}

func containsStatus(list []model.StatusID, st model.StatusID) bool {
	for _, v := range list {
		if v == st {
			return true
		}
	}
	return false
}

func containsID(list []uuid.UUID, id uuid.UUID) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
