package model

import "github.com/google/uuid"

// Role is resolved once by the identity provider and passed explicitly to the workflow.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleAgent   Role = "agent"
	RoleDriver  Role = "driver"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleAgent, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role belongs to an environmental agency collaborator.
func (r Role) IsStaff() bool {
	return r == RoleAgent || r == RoleDriver
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}
