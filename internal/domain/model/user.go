package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a citizen or a staff account.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	TaxID        string
	Phone        string
	Address      Address
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser carries the fields required to persist an account.
type NewUser struct {
	Name         string
	Email        string
	TaxID        string
	Phone        string
	Address      Address
	Role         Role
	PasswordHash string
}

// Address is the pickup location kept on a citizen profile.
type Address struct {
	Street     string
	Number     string
	District   string
	City       string
	State      string
	PostalCode string
}

// Requester is the identity and contact data shown to staff before acting on an order.
type Requester struct {
	ID      uuid.UUID
	Name    string
	TaxID   string
	Phone   string
	Address Address
}

// RequesterOf builds the requester view of an account.
func RequesterOf(u User) Requester {
	return Requester{ID: u.ID, Name: u.Name, TaxID: u.TaxID, Phone: u.Phone, Address: u.Address}
}
