package domain

import "time"

// Office is a single facility owned by a company. It is the home scope for
// staff and office_admin accounts and for inventory items.
type Office struct {
	Code        string
	CompanyCode string
	CompanyName string
	Name        string
	Address     string
	Phone       string
	Status      RecordStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
