package model

import "github.com/google/uuid"

// QueueName identifies one of the role specific work queues.
type QueueName string

const (
	QueueTriage    QueueName = "triage"
	QueueCancelled QueueName = "cancelled"
	QueueInPerson  QueueName = "in_person"
	QueuePickup    QueueName = "pickup"
	QueueMine      QueueName = "mine"
)

// QueueRequest asks for the orders currently actionable by a role.
// An empty Queue selects the default queue of the role.
type QueueRequest struct {
	Role        Role
	Queue       QueueName
	RequesterID uuid.UUID
}

// SortKey selects the column a fetch is ordered by.
type SortKey int

const (
	SortByCreatedAt SortKey = iota
	SortByCancelledAt
)

// OrderFilter expresses equality and membership predicates understood by the store.
type OrderFilter struct {
	Statuses     []StatusID
	RequesterIDs []uuid.UUID
	SortBy       SortKey
	Descending   bool
}

// LookupMode tells how a lookup query was interpreted.
type LookupMode string

const (
	LookupByTaxID  LookupMode = "tax_id"
	LookupByNumber LookupMode = "number"
)

// LookupResult bundles matched orders with their requesters.
type LookupResult struct {
	Mode   LookupMode
	Orders []OrderView
}
