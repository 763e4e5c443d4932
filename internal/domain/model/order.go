package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ServiceType classifies what the citizen asks for.
type ServiceType string

const (
	ServiceCollection ServiceType = "collection"
	ServiceDonation   ServiceType = "donation"
)

// Valid reports whether the service type is known.
func (s ServiceType) Valid() bool {
	return s == ServiceCollection || s == ServiceDonation
}

// Shift selects the half of the day of a scheduled visit.
type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
)

// Valid reports whether the shift is morning or afternoon.
func (s Shift) Valid() bool {
	return s == ShiftMorning || s == ShiftAfternoon
}

// Order is a citizen e-waste collection request ("ordem de serviço").
type Order struct {
	ID            uuid.UUID
	Number        int64
	RequesterID   uuid.UUID
	ServiceType   ServiceType
	EquipmentType EquipmentType
	Description   string
	PhotoURL      *string
	Message       *string
	Status        StatusID
	AgentNote     *string
	DriverNote    *string
	ScheduledDate *time.Time
	Shift         *Shift
	CancelledAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
}

// DisplayNumber renders the human facing zero padded order number.
func (o Order) DisplayNumber() string {
	return FormatNumber(o.Number)
}

// FormatNumber pads an order number to four digits.
func FormatNumber(number int64) string {
	return fmt.Sprintf("%04d", number)
}

// NewOrder holds citizen supplied data for order creation.
type NewOrder struct {
	RequesterID   uuid.UUID
	ServiceType   ServiceType
	EquipmentType EquipmentType
	Description   string
	PhotoURL      *string
	Message       *string
}

// OrderPatch lists every column a transition may write. Scheduling and
// cancellation fields are always written so stale values are cleared.
type OrderPatch struct {
	Status        StatusID
	AgentNote     *string
	DriverNote    *string
	ScheduledDate *time.Time
	Shift         *Shift
	CancelledAt   *time.Time
}

// OrderView joins an order with the identity of its requester.
type OrderView struct {
	Order
	Requester Requester
}
