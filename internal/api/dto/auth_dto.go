package dto

import "time"

// LoginRequest payload for company-hierarchy accounts.
type LoginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

// ContractorLoginRequest payload for partner contacts.
type ContractorLoginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// LoginResponse carries the token and the authenticated identity.
type LoginResponse struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	CompanyCode string    `json:"company_code,omitempty"`
	OfficeCode  string    `json:"office_code,omitempty"`
	PartnerID   *string   `json:"partner_id,omitempty"`
}
