package domain

import "time"

// RecordStatus marks rows as active or logically deleted. Rows are never
// physically removed.
type RecordStatus string

const (
	RecordStatusActive   RecordStatus = "active"
	RecordStatusInactive RecordStatus = "inactive"
)

// Account is a login-capable identity within the company hierarchy.
type Account struct {
	ID           string
	Name         string
	Role         Role
	CompanyCode  string
	CompanyName  string
	OfficeCode   string
	OfficeName   string
	PasswordHash string
	Status       RecordStatus
	IsFirstLogin bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
