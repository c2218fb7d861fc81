package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/onetouch-fm/facility-service/internal/api/dto"
	"github.com/onetouch-fm/facility-service/internal/auth"
	"github.com/onetouch-fm/facility-service/internal/service"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// SettingsHandler manages system setting endpoints.
type SettingsHandler struct {
	service *service.SettingService
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(settingService *service.SettingService) *SettingsHandler {
	return &SettingsHandler{service: settingService}
}

// List GET /settings. Returns a flat key/value map.
func (h *SettingsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	settings, err := h.service.List(c.Context(), principal)
	if err != nil {
		return err
	}
	values := fiber.Map{}
	for i := range settings {
		values[settings[i].Key] = settings[i].Value
	}
	return c.JSON(fiber.Map{"data": values})
}

// Get GET /settings/:key.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	setting, err := h.service.Get(c.Context(), principal, c.Params("key"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSettingResponse(setting)})
}

// Update PUT /settings/:key.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	setting, err := h.service.Update(c.Context(), principal, c.Params("key"), req.Value)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSettingResponse(setting)})
}
