package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/onetouch-fm/facility-service/internal/api/dto"
	"github.com/onetouch-fm/facility-service/internal/auth"
	"github.com/onetouch-fm/facility-service/internal/service"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// CompaniesHandler manages company endpoints.
type CompaniesHandler struct {
	service *service.CompanyService
}

// NewCompaniesHandler constructs handler.
func NewCompaniesHandler(companyService *service.CompanyService) *CompaniesHandler {
	return &CompaniesHandler{service: companyService}
}

// List GET /companies.
func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	companies, err := h.service.List(c.Context(), principal,
		queryStringPtr(c, "search"), queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return err
	}
	responses := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		responses = append(responses, dto.NewCompanyResponse(&companies[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Get GET /companies/:code.
func (h *CompaniesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	company, err := h.service.Get(c.Context(), principal, c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCompanyResponse(company)})
}

// Create POST /companies.
func (h *CompaniesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	company, err := h.service.Create(c.Context(), principal, service.CompanyInput{
		Code:       req.Code,
		Name:       req.Name,
		PostalCode: req.PostalCode,
		Prefecture: req.Prefecture,
		Address:    req.Address,
		Phone:      req.Phone,
		Email:      req.Email,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCompanyResponse(company)})
}

// Update PUT /companies/:code.
func (h *CompaniesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	company, err := h.service.Update(c.Context(), principal, c.Params("code"), service.CompanyInput{
		Name:       req.Name,
		PostalCode: req.PostalCode,
		Prefecture: req.Prefecture,
		Address:    req.Address,
		Phone:      req.Phone,
		Email:      req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCompanyResponse(company)})
}
