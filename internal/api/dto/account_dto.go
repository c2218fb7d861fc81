package dto

import (
	"time"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// CreateAccountRequest payload.
type CreateAccountRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Password    string `json:"password"`
	CompanyCode string `json:"company_code"`
	OfficeCode  string `json:"office_code"`
}

// UpdateAccountRequest payload. Omitted fields keep their current value.
type UpdateAccountRequest struct {
	Name       *string `json:"name"`
	Role       *string `json:"role"`
	OfficeCode *string `json:"office_code"`
	Status     *string `json:"status"`
	Password   *string `json:"password"`
}

// AccountResponse is the outward account representation; the password hash
// never leaves the service layer.
type AccountResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	CompanyCode  string     `json:"company_code"`
	CompanyName  string     `json:"company_name,omitempty"`
	OfficeCode   string     `json:"office_code,omitempty"`
	OfficeName   string     `json:"office_name,omitempty"`
	Status       string     `json:"status"`
	IsFirstLogin bool       `json:"is_first_login"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewAccountResponse maps a domain account.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:           account.ID,
		Name:         account.Name,
		Role:         string(account.Role),
		CompanyCode:  account.CompanyCode,
		CompanyName:  account.CompanyName,
		OfficeCode:   account.OfficeCode,
		OfficeName:   account.OfficeName,
		Status:       string(account.Status),
		IsFirstLogin: account.IsFirstLogin,
		LastLoginAt:  account.LastLoginAt,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}
}
