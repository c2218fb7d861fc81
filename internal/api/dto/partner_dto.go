package dto

import (
	"time"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// PartnerRequest payload for create and update.
type PartnerRequest struct {
	PartnerCode string   `json:"partner_code"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	ContactName string   `json:"contact_name"`
	Categories  []string `json:"categories"`
}

// PartnerContactRequest payload for attaching a contractor login.
type PartnerContactRequest struct {
	Name     string `json:"name"`
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	IsMain   bool   `json:"is_main"`
}

// PartnerResponse is the outward partner representation.
type PartnerResponse struct {
	ID                string    `json:"id"`
	PartnerCode       string    `json:"partner_code,omitempty"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone,omitempty"`
	Email             string    `json:"email,omitempty"`
	Address           string    `json:"address,omitempty"`
	ContactName       string    `json:"contact_name,omitempty"`
	Categories        []string  `json:"categories"`
	Status            string    `json:"status"`
	AssignedCompanies []string  `json:"assigned_companies"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewPartnerResponse maps a domain partner.
func NewPartnerResponse(partner *domain.Partner) PartnerResponse {
	categories := make([]string, 0, len(partner.Categories))
	for _, category := range partner.Categories {
		categories = append(categories, string(category))
	}
	return PartnerResponse{
		ID:                partner.ID,
		PartnerCode:       partner.PartnerCode,
		Name:              partner.Name,
		Phone:             partner.Phone,
		Email:             partner.Email,
		Address:           partner.Address,
		ContactName:       partner.ContactName,
		Categories:        categories,
		Status:            string(partner.Status),
		AssignedCompanies: partner.AssignedCompanies,
		CreatedAt:         partner.CreatedAt,
		UpdatedAt:         partner.UpdatedAt,
	}
}

// PartnerContactResponse is the outward contractor-login representation; the
// password hash never leaves the service layer.
type PartnerContactResponse struct {
	ID        string    `json:"id"`
	PartnerID string    `json:"partner_id"`
	Name      string    `json:"name"`
	LoginID   string    `json:"login_id"`
	Phone     string    `json:"phone,omitempty"`
	IsMain    bool      `json:"is_main"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPartnerContactResponse maps a partner contact.
func NewPartnerContactResponse(contact *domain.PartnerContact) PartnerContactResponse {
	return PartnerContactResponse{
		ID:        contact.ID,
		PartnerID: contact.PartnerID,
		Name:      contact.Name,
		LoginID:   contact.LoginID,
		Phone:     contact.Phone,
		IsMain:    contact.IsMain,
		Status:    string(contact.Status),
		CreatedAt: contact.CreatedAt,
	}
}
