package dto

import (
	"time"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// CompanyRequest payload for create and update.
type CompanyRequest struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	PostalCode string `json:"postal_code"`
	Prefecture string `json:"prefecture"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// CompanyResponse is the outward company representation.
type CompanyResponse struct {
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	PostalCode string    `json:"postal_code,omitempty"`
	Prefecture string    `json:"prefecture,omitempty"`
	Address    string    `json:"address,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewCompanyResponse maps a domain company.
func NewCompanyResponse(company *domain.Company) CompanyResponse {
	return CompanyResponse{
		Code:       company.Code,
		Name:       company.Name,
		PostalCode: company.PostalCode,
		Prefecture: company.Prefecture,
		Address:    company.Address,
		Phone:      company.Phone,
		Email:      company.Email,
		Status:     string(company.Status),
		CreatedAt:  company.CreatedAt,
		UpdatedAt:  company.UpdatedAt,
	}
}

// OfficeRequest payload for create and update.
type OfficeRequest struct {
	Code        string `json:"code"`
	CompanyCode string `json:"company_code"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

// OfficeResponse is the outward office representation.
type OfficeResponse struct {
	Code        string    `json:"code"`
	CompanyCode string    `json:"company_code"`
	CompanyName string    `json:"company_name,omitempty"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewOfficeResponse maps a domain office.
func NewOfficeResponse(office *domain.Office) OfficeResponse {
	return OfficeResponse{
		Code:        office.Code,
		CompanyCode: office.CompanyCode,
		CompanyName: office.CompanyName,
		Name:        office.Name,
		Address:     office.Address,
		Phone:       office.Phone,
		Status:      string(office.Status),
		CreatedAt:   office.CreatedAt,
		UpdatedAt:   office.UpdatedAt,
	}
}
