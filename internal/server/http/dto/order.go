package dto

import "time"

// CreateOrderRequest is submitted by a citizen to open an order.
type CreateOrderRequest struct {
	ServiceType   string `json:"service_type" binding:"required,oneof=collection donation"`
	EquipmentType string `json:"equipment_type" binding:"required,equipment"`
	Description   string `json:"description" binding:"required"`
	PhotoURL      string `json:"photo_url" binding:"omitempty,url"`
	Message       string `json:"message"`
}

// TransitionRequest moves an order to another status. Status accepts the
// numeric id, the code or the label.
type TransitionRequest struct {
	Status        string `json:"status" binding:"required"`
	Annotation    string `json:"annotation"`
	ScheduledDate string `json:"scheduled_date" binding:"omitempty,datetime=2006-01-02"`
	Shift         string `json:"shift" binding:"omitempty,shift"`
}

type StatusResponse struct {
	ID    int16  `json:"id"`
	Code  string `json:"code"`
	Label string `json:"label"`
}

type OrderResponse struct {
	Number         string         `json:"number"`
	ServiceType    string         `json:"service_type"`
	EquipmentType  string         `json:"equipment_type"`
	EquipmentLabel string         `json:"equipment_label"`
	Description    string         `json:"description"`
	PhotoURL       *string        `json:"photo_url,omitempty"`
	Message        *string        `json:"message,omitempty"`
	Status         StatusResponse `json:"status"`
	AgentNote      *string        `json:"agent_note,omitempty"`
	DriverNote     *string        `json:"driver_note,omitempty"`
	ScheduledDate  *string        `json:"scheduled_date,omitempty"`
	Shift          *string        `json:"shift,omitempty"`
	CancelledAt    *time.Time     `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type AddressResponse struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

type RequesterResponse struct {
	Name    string          `json:"name"`
	TaxID   string          `json:"tax_id,omitempty"`
	Phone   string          `json:"phone,omitempty"`
	Address AddressResponse `json:"address"`
}

type EquipmentResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// CatalogResponse lists the reference data a client needs to build forms.
type CatalogResponse struct {
	Statuses  []StatusResponse    `json:"statuses"`
	Equipment []EquipmentResponse `json:"equipment"`
}

// OrderDetailResponse adds requester identity and the moves the caller may perform.
type OrderDetailResponse struct {
	OrderResponse
	Requester          RequesterResponse `json:"requester"`
	AllowedTransitions []StatusResponse  `json:"allowed_transitions"`
}

type HistoryEntryResponse struct {
	From          StatusResponse `json:"from"`
	To            StatusResponse `json:"to"`
	ActorRole     string         `json:"actor_role"`
	Annotation    string         `json:"annotation"`
	ScheduledDate *string        `json:"scheduled_date,omitempty"`
	Shift         *string        `json:"shift,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

type LookupResponse struct {
	Mode   string                `json:"mode"`
	Orders []OrderDetailResponse `json:"orders"`
}
