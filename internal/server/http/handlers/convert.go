package handlers

import (
	"time"

	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/server/http/dto"
)

const dateLayout = "2006-01-02"

func toStatusResponse(id model.StatusID) dto.StatusResponse {
	st, _ := model.LookupStatus(id)
	return dto.StatusResponse{ID: int16(id), Code: st.Code, Label: st.Label}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		Number:         o.DisplayNumber(),
		ServiceType:    string(o.ServiceType),
		EquipmentType:  string(o.EquipmentType),
		EquipmentLabel: o.EquipmentType.Label(),
		Description:    o.Description,
		PhotoURL:       o.PhotoURL,
		Message:        o.Message,
		Status:         toStatusResponse(o.Status),
		AgentNote:      o.AgentNote,
		DriverNote:     o.DriverNote,
		ScheduledDate:  formatDate(o.ScheduledDate),
		Shift:          shiftString(o.Shift),
		CancelledAt:    o.CancelledAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func toOrderList(orders []model.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toOrderDetail(v model.OrderView, targets []model.StatusID) dto.OrderDetailResponse {
	allowed := make([]dto.StatusResponse, 0, len(targets))
	for _, id := range targets {
		allowed = append(allowed, toStatusResponse(id))
	}
	return dto.OrderDetailResponse{
		OrderResponse:      toOrderResponse(v.Order),
		Requester:          toRequesterResponse(v.Requester),
		AllowedTransitions: allowed,
	}
}

func toRequesterResponse(r model.Requester) dto.RequesterResponse {
	return dto.RequesterResponse{
		Name:  r.Name,
		TaxID: r.TaxID,
		Phone: r.Phone,
		Address: dto.AddressResponse{
			Street:     r.Address.Street,
			Number:     r.Address.Number,
			District:   r.Address.District,
			City:       r.Address.City,
			State:      r.Address.State,
			PostalCode: r.Address.PostalCode,
		},
	}
}

func toHistory(records []model.TransitionRecord) []dto.HistoryEntryResponse {
	out := make([]dto.HistoryEntryResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.HistoryEntryResponse{
			From:          toStatusResponse(r.From),
			To:            toStatusResponse(r.To),
			ActorRole:     string(r.ActorRole),
			Annotation:    r.Annotation,
			ScheduledDate: formatDate(r.ScheduledDate),
			Shift:         shiftString(r.Shift),
			CreatedAt:     r.CreatedAt,
		})
	}
	return out
}

func toStaffResponse(u model.User) dto.StaffResponse {
	return dto.StaffResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func shiftString(s *model.Shift) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
