package domain

import "time"

// Partner is an external service organization. Partners never belong to a
// company; they are bound to companies through contracts.
type Partner struct {
	ID                string
	PartnerCode       string
	Name              string
	Phone             string
	Email             string
	Address           string
	ContactName       string
	Categories        []Category
	Status            RecordStatus
	AssignedCompanies []string // company codes derived from active contracts
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PartnerContact is a contractor login identity attached to a partner.
type PartnerContact struct {
	ID           string
	PartnerID    string
	Name         string
	LoginID      string
	PasswordHash string
	Phone        string
	IsMain       bool
	Status       RecordStatus
	CreatedAt    time.Time
}
