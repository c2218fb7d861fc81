package dto

import (
	"time"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// CreateItemRequest payload.
type CreateItemRequest struct {
	Name                string  `json:"name"`
	Category            string  `json:"category"`
	Maker               string  `json:"maker"`
	Model               string  `json:"model"`
	Unit                string  `json:"unit"`
	Price               int64   `json:"price"`
	Stock               int     `json:"stock"`
	Description         string  `json:"description"`
	Floor               string  `json:"floor"`
	Location            string  `json:"location"`
	OfficeCode          string  `json:"office_code"`
	AssignedPartnerID   *string `json:"assigned_partner_id"`
	AssignedPartnerName string  `json:"assigned_partner_name"`
}

// UpdateItemRequest payload. ClearPartner removes the manual pin.
type UpdateItemRequest struct {
	Name                *string `json:"name"`
	Category            *string `json:"category"`
	Maker               *string `json:"maker"`
	Model               *string `json:"model"`
	Unit                *string `json:"unit"`
	Price               *int64  `json:"price"`
	Stock               *int    `json:"stock"`
	Description         *string `json:"description"`
	Floor               *string `json:"floor"`
	Location            *string `json:"location"`
	AssignedPartnerID   *string `json:"assigned_partner_id"`
	AssignedPartnerName *string `json:"assigned_partner_name"`
	ClearPartner        bool    `json:"clear_partner"`
}

// ImportItemRow is one row of a bulk import payload.
type ImportItemRow struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Maker       string `json:"maker"`
	Model       string `json:"model"`
	Unit        string `json:"unit"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Description string `json:"description"`
	Floor       string `json:"floor"`
	Location    string `json:"location"`
}

// ImportItemsRequest payload.
type ImportItemsRequest struct {
	OfficeCode string          `json:"office_code"`
	Rows       []ImportItemRow `json:"rows"`
}

// ItemResponse is the outward item representation.
type ItemResponse struct {
	ItemID              string    `json:"item_id"`
	CompanyCode         string    `json:"company_code"`
	OfficeCode          string    `json:"office_code"`
	Name                string    `json:"name"`
	Category            string    `json:"category"`
	Maker               string    `json:"maker,omitempty"`
	Model               string    `json:"model,omitempty"`
	Unit                string    `json:"unit,omitempty"`
	Price               int64     `json:"price"`
	Stock               int       `json:"stock"`
	Description         string    `json:"description,omitempty"`
	Floor               string    `json:"floor,omitempty"`
	Location            string    `json:"location,omitempty"`
	AssignedPartnerID   *string   `json:"assigned_partner_id,omitempty"`
	AssignedPartnerName string    `json:"assigned_partner_name,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NewItemResponse maps a domain item.
func NewItemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ItemID:              item.ItemID,
		CompanyCode:         item.CompanyCode,
		OfficeCode:          item.OfficeCode,
		Name:                item.Name,
		Category:            string(item.Category),
		Maker:               item.Maker,
		Model:               item.Model,
		Unit:                item.Unit,
		Price:               item.Price,
		Stock:               item.Stock,
		Description:         item.Description,
		Floor:               item.Floor,
		Location:            item.Location,
		AssignedPartnerID:   item.AssignedPartnerID,
		AssignedPartnerName: item.AssignedPartnerName,
		Status:              string(item.Status),
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
	}
}

// CategoryCountResponse is one row of the stats aggregate.
type CategoryCountResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ItemStatsResponse groups the inventory aggregates.
type ItemStatsResponse struct {
	Categories []CategoryCountResponse `json:"categories"`
	Floors     []string                `json:"floors"`
}

// ImportItemsResponse reports how many rows landed.
type ImportItemsResponse struct {
	Imported int `json:"imported"`
}
