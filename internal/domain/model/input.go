package model

// Registration carries a citizen self registration.
type Registration struct {
	Name     string
	Email    string
	TaxID    string
	Phone    string
	Address  Address
	Password string
}

// OrderDraft is what a citizen submits when opening a request.
type OrderDraft struct {
	ServiceType   ServiceType
	EquipmentType EquipmentType
	Description   string
	PhotoURL      string
	Message       string
}

// StaffAccount describes a collaborator account created by an administrator.
type StaffAccount struct {
	Name     string
	Email    string
	Password string
	Role     Role
}
