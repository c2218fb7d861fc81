package dto

import (
	"time"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// CreateContractRequest payload. A nil office_code makes the contract
// company-wide.
type CreateContractRequest struct {
	PartnerID   string     `json:"partner_id"`
	CompanyCode string     `json:"company_code"`
	OfficeCode  *string    `json:"office_code"`
	Categories  []string   `json:"categories"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Notes       string     `json:"notes"`
}

// UpdateContractRequest payload.
type UpdateContractRequest struct {
	OfficeCode      *string    `json:"office_code"`
	ClearOfficeCode bool       `json:"clear_office_code"`
	Categories      []string   `json:"categories"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Notes           *string    `json:"notes"`
	Status          *string    `json:"status"`
}

// ContractResponse is the outward contract representation.
type ContractResponse struct {
	ID          string     `json:"id"`
	PartnerID   string     `json:"partner_id"`
	PartnerName string     `json:"partner_name"`
	CompanyCode string     `json:"company_code"`
	OfficeCode  *string    `json:"office_code,omitempty"`
	Categories  []string   `json:"categories"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewContractResponse maps a domain contract.
func NewContractResponse(contract *domain.Contract) ContractResponse {
	categories := make([]string, 0, len(contract.Categories))
	for _, category := range contract.Categories {
		categories = append(categories, string(category))
	}
	return ContractResponse{
		ID:          contract.ID,
		PartnerID:   contract.PartnerID,
		PartnerName: contract.PartnerName,
		CompanyCode: contract.CompanyCode,
		OfficeCode:  contract.OfficeCode,
		Categories:  categories,
		Status:      string(contract.Status),
		StartDate:   contract.StartDate,
		EndDate:     contract.EndDate,
		Notes:       contract.Notes,
		CreatedAt:   contract.CreatedAt,
		UpdatedAt:   contract.UpdatedAt,
	}
}

// ResolvePartnerResponse is the routing outcome. A null partner_id means
// nobody is responsible and the request needs manual triage.
type ResolvePartnerResponse struct {
	PartnerID   *string `json:"partner_id"`
	PartnerName string  `json:"partner_name,omitempty"`
	Assigned    bool    `json:"assigned"`
}
