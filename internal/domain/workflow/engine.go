// Package workflow holds the order status state machine. It is pure: every
// rule is evaluated against an already fetched order and no I/O happens here.
package workflow

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	domainErrors "github.com/polkiloo/ecocoleta/internal/domain/errors"
	"github.com/polkiloo/ecocoleta/internal/domain/model"
)

// MinAnnotationLength is the minimum trimmed size of a justification.
const MinAnnotationLength = 10

// Payload carries the actor supplied data of a transition.
type Payload struct {
	Annotation    string
	ScheduledDate *time.Time
	Shift         *model.Shift
	// CancelledAt is accepted only to be discarded; the stamp always comes from the engine clock.
	CancelledAt *time.Time
}

// Apply validates a transition and returns the resulting order together
// with the patch the store must write. The input order is never modified.
func Apply(order model.Order, role model.Role, target model.StatusID, p Payload, now time.Time) (*model.Order, model.OrderPatch, error) {
	if order.Status.IsTerminal() {
		return nil, model.OrderPatch{}, fmt.Errorf("%w: order %s is %s",
			domainErrors.ErrClosedOrder, order.DisplayNumber(), order.Status)
	}
	if !target.Valid() {
		return nil, model.OrderPatch{}, fmt.Errorf("%w: %d", domainErrors.ErrUnknownStatus, target)
	}
	if err := Authorize(order.Status, role, target); err != nil {
		return nil, model.OrderPatch{}, err
	}

	annotation := strings.TrimSpace(p.Annotation)
	if utf8.RuneCountInString(annotation) < MinAnnotationLength {
		return nil, model.OrderPatch{}, domainErrors.ErrAnnotationRequired
	}

	patch := model.OrderPatch{Status: target}
	if target.RequiresScheduling() {
		if p.ScheduledDate == nil || p.ScheduledDate.IsZero() || p.Shift == nil || !p.Shift.Valid() {
			return nil, model.OrderPatch{}, domainErrors.ErrSchedulingDataRequired
		}
		date := truncateDate(*p.ScheduledDate)
		shift := *p.Shift
		patch.ScheduledDate = &date
		patch.Shift = &shift
	}
	if target.RequiresCancellationStamp() {
		stamp := now.UTC()
		patch.CancelledAt = &stamp
	}

	switch role {
	case model.RoleAgent:
		patch.AgentNote = &annotation
		patch.DriverNote = order.DriverNote
	case model.RoleDriver:
		patch.DriverNote = &annotation
		patch.AgentNote = order.AgentNote
	}

	next := order
	next.Status = patch.Status
	next.AgentNote = patch.AgentNote
	next.DriverNote = patch.DriverNote
	next.ScheduledDate = patch.ScheduledDate
	next.Shift = patch.Shift
	next.CancelledAt = patch.CancelledAt
	next.UpdatedAt = now.UTC()

	return &next, patch, nil
}

// Authorize checks whether role may move an order from current to target.
func Authorize(current model.StatusID, role model.Role, target model.StatusID) error {
	st, ok := model.LookupStatus(target)
	if !ok {
		return fmt.Errorf("%w: %d", domainErrors.ErrUnknownStatus, target)
	}

	switch role {
	case model.RoleAgent:
		if st.Origin == model.OriginAgent {
			return nil
		}
	case model.RoleDriver:
		if st.Origin == model.OriginDriver && current.RequiresScheduling() {
			return nil
		}
	}
	return fmt.Errorf("%w: %s cannot move %s to %s",
		domainErrors.ErrUnauthorizedTransition, role, current, st.Label)
}

// Targets lists the statuses role may choose for an order in current.
func Targets(current model.StatusID, role model.Role) []model.StatusID {
	if current.IsTerminal() {
		return nil
	}
	var out []model.StatusID
	for _, st := range model.Statuses() {
		if Authorize(current, role, st.ID) == nil {
			out = append(out, st.ID)
		}
	}
	return out
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
