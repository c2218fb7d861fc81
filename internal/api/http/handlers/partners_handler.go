package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/onetouch-fm/facility-service/internal/api/dto"
	"github.com/onetouch-fm/facility-service/internal/auth"
	"github.com/onetouch-fm/facility-service/internal/service"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// PartnersHandler manages partner endpoints.
type PartnersHandler struct {
	service *service.PartnerService
}

// NewPartnersHandler constructs handler.
func NewPartnersHandler(partnerService *service.PartnerService) *PartnersHandler {
	return &PartnersHandler{service: partnerService}
}

// List GET /partners.
func (h *PartnersHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	partners, err := h.service.List(c.Context(), principal,
		queryStringPtr(c, "search"), queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return err
	}
	responses := make([]dto.PartnerResponse, 0, len(partners))
	for i := range partners {
		responses = append(responses, dto.NewPartnerResponse(&partners[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Get GET /partners/:id.
func (h *PartnersHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	partner, err := h.service.Get(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPartnerResponse(partner)})
}

// Create POST /partners.
func (h *PartnersHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.PartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	partner, err := h.service.Create(c.Context(), principal, service.PartnerInput{
		PartnerCode: req.PartnerCode,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		ContactName: req.ContactName,
		Categories:  toCategories(req.Categories),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewPartnerResponse(partner)})
}

// Update PUT /partners/:id.
func (h *PartnersHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.PartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.PartnerInput{
		PartnerCode: req.PartnerCode,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		ContactName: req.ContactName,
	}
	if req.Categories != nil {
		input.Categories = toCategories(req.Categories)
	}
	partner, err := h.service.Update(c.Context(), principal, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPartnerResponse(partner)})
}

// Delete DELETE /partners/:id.
func (h *PartnersHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// AddContact POST /partners/:id/contacts.
func (h *PartnersHandler) AddContact(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.PartnerContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	contact, err := h.service.AddContact(c.Context(), principal, c.Params("id"), service.PartnerContactInput{
		Name:     req.Name,
		LoginID:  req.LoginID,
		Password: req.Password,
		Phone:    req.Phone,
		IsMain:   req.IsMain,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewPartnerContactResponse(contact)})
}

// ListContacts GET /partners/:id/contacts.
func (h *PartnersHandler) ListContacts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	contacts, err := h.service.ListContacts(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	responses := make([]dto.PartnerContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, dto.NewPartnerContactResponse(&contacts[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}
