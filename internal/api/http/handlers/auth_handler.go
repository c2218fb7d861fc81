package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/onetouch-fm/facility-service/internal/api/dto"
	"github.com/onetouch-fm/facility-service/internal/auth"
	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/service"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// AuthHandler exposes login and password endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.LoginID == "" || req.Password == "" {
		return apperrors.NewValidationError("login_id and password required", nil)
	}
	principal, token, expiresAt, err := h.service.Login(c.Context(), req.LoginID, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": loginResponse(principal, token, expiresAt)})
}

// LoginContractor POST /auth/contractor/login.
func (h *AuthHandler) LoginContractor(c *fiber.Ctx) error {
	var req dto.ContractorLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.LoginID == "" || req.Password == "" {
		return apperrors.NewValidationError("login_id and password required", nil)
	}
	principal, token, expiresAt, err := h.service.LoginContractor(c.Context(), req.LoginID, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": loginResponse(principal, token, expiresAt)})
}

// ChangePassword POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current_password and new_password required", nil)
	}
	if err := h.service.ChangePassword(c.Context(), principal, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}

func loginResponse(p domain.Principal, token string, expiresAt time.Time) dto.LoginResponse {
	return dto.LoginResponse{
		Token:       token,
		ExpiresAt:   expiresAt,
		ID:          p.ID,
		Name:        p.Name,
		Role:        string(p.Role),
		CompanyCode: p.CompanyCode,
		OfficeCode:  p.OfficeCode,
		PartnerID:   p.PartnerID,
	}
}
