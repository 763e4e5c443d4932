package dto

// RegisterRequest describes a citizen sign up payload.
type RegisterRequest struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	TaxID    string         `json:"tax_id" binding:"required,cpf"`
	Phone    string         `json:"phone" binding:"required"`
	Address  AddressRequest `json:"address"`
	Password string         `json:"password" binding:"required,min=6"`
}

// AddressRequest is the requester's pickup address. PostalCode is the CEP.
type AddressRequest struct {
	Street     string `json:"street" binding:"required"`
	Number     string `json:"number" binding:"required"`
	District   string `json:"district" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required,len=2"`
	PostalCode string `json:"postal_code" binding:"required"`
}

// LoginRequest describes e-mail/password payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
