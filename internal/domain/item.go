package domain

import "time"

// ItemStatus marks inventory rows; deletion is logical only.
type ItemStatus string

const (
	ItemStatusActive  ItemStatus = "active"
	ItemStatusDeleted ItemStatus = "deleted"
)

// Item is a piece of inventory registered at an office. AssignedPartnerID is
// a manual pin that short-circuits contract-based partner resolution for
// reports filed against the item.
type Item struct {
	ItemID              string
	CompanyCode         string
	OfficeCode          string
	Name                string
	Category            Category
	Maker               string
	Model               string
	Unit                string
	Price               int64
	Stock               int
	Description         string
	Floor               string
	Location            string
	AssignedPartnerID   *string
	AssignedPartnerName string
	Status              ItemStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
