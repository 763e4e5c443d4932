package model

import (
	"time"

	"github.com/google/uuid"
)

// TransitionRecord is an audit entry written together with each status change.
type TransitionRecord struct {
	ID            int64
	OrderID       uuid.UUID
	From          StatusID
	To            StatusID
	ActorID       uuid.UUID
	ActorRole     Role
	Annotation    string
	ScheduledDate *time.Time
	Shift         *Shift
	CreatedAt     time.Time
}
