package domain

import "time"

// Contract binds a partner to a set of categories for one company, optionally
// narrowed to a single office. An office-specific contract outranks a
// company-wide one for the same category; only active contracts participate
// in partner resolution.
type Contract struct {
	ID          string
	PartnerID   string
	PartnerName string
	CompanyCode string
	OfficeCode  *string // nil = company-wide
	Categories  []Category
	Status      RecordStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CoversCategory reports whether the contract includes the category.
func (c Contract) CoversCategory(category Category) bool {
	for _, covered := range c.Categories {
		if covered == category {
			return true
		}
	}
	return false
}
