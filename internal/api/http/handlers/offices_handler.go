package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/onetouch-fm/facility-service/internal/api/dto"
	"github.com/onetouch-fm/facility-service/internal/auth"
	"github.com/onetouch-fm/facility-service/internal/service"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// OfficesHandler manages office endpoints.
type OfficesHandler struct {
	service *service.OfficeService
}

// NewOfficesHandler constructs handler.
func NewOfficesHandler(officeService *service.OfficeService) *OfficesHandler {
	return &OfficesHandler{service: officeService}
}

// List GET /offices.
func (h *OfficesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	offices, err := h.service.List(c.Context(), principal,
		queryStringPtr(c, "search"), queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return err
	}
	responses := make([]dto.OfficeResponse, 0, len(offices))
	for i := range offices {
		responses = append(responses, dto.NewOfficeResponse(&offices[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Get GET /offices/:code.
func (h *OfficesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	office, err := h.service.Get(c.Context(), principal, c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOfficeResponse(office)})
}

// Create POST /offices.
func (h *OfficesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.OfficeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	office, err := h.service.Create(c.Context(), principal, service.OfficeInput{
		Code:        req.Code,
		CompanyCode: req.CompanyCode,
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewOfficeResponse(office)})
}

// Update PUT /offices/:code.
func (h *OfficesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.OfficeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	office, err := h.service.Update(c.Context(), principal, c.Params("code"), service.OfficeInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOfficeResponse(office)})
}

// Delete DELETE /offices/:code.
func (h *OfficesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), principal, c.Params("code")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
