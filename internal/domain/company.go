package domain

import "time"

// Company owns offices and accounts. The code is the unique key used for
// scope filtering.
type Company struct {
	Code       string
	Name       string
	PostalCode string
	Prefecture string
	Address    string
	Phone      string
	Email      string
	Status     RecordStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
