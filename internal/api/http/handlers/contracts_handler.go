package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/onetouch-fm/facility-service/internal/api/dto"
	"github.com/onetouch-fm/facility-service/internal/auth"
	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/service"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// ContractsHandler manages contract endpoints and partner resolution.
type ContractsHandler struct {
	service *service.ContractService
}

// NewContractsHandler constructs handler.
func NewContractsHandler(contractService *service.ContractService) *ContractsHandler {
	return &ContractsHandler{service: contractService}
}

// List GET /contracts.
func (h *ContractsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	filter := service.ContractListFilter{
		PartnerID: queryStringPtr(c, "partner_id"),
		Limit:     queryInt(c, "limit", 50),
		Offset:    queryInt(c, "offset", 0),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.RecordStatus(raw)
		filter.Status = &status
	}
	contracts, err := h.service.List(c.Context(), principal, filter)
	if err != nil {
		return err
	}
	responses := make([]dto.ContractResponse, 0, len(contracts))
	for i := range contracts {
		responses = append(responses, dto.NewContractResponse(&contracts[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Get GET /contracts/:id.
func (h *ContractsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	contract, err := h.service.Get(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewContractResponse(contract)})
}

// Create POST /contracts.
func (h *ContractsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PartnerID == "" {
		return apperrors.NewValidationError("partner_id required", nil)
	}
	contract, err := h.service.Create(c.Context(), principal, service.ContractCreateInput{
		PartnerID:   req.PartnerID,
		CompanyCode: req.CompanyCode,
		OfficeCode:  req.OfficeCode,
		Categories:  toCategories(req.Categories),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewContractResponse(contract)})
}

// Update PUT /contracts/:id.
func (h *ContractsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.ContractUpdateInput{
		OfficeCode:      req.OfficeCode,
		ClearOfficeCode: req.ClearOfficeCode,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Notes:           req.Notes,
	}
	if req.Categories != nil {
		input.Categories = toCategories(req.Categories)
	}
	if req.Status != nil {
		status := domain.RecordStatus(*req.Status)
		input.Status = &status
	}
	contract, err := h.service.Update(c.Context(), principal, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewContractResponse(contract)})
}

// Delete DELETE /contracts/:id.
func (h *ContractsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Resolve GET /contracts/resolve. Answers which partner would receive a
// report for a category at an office; used by clients to preview routing.
func (h *ContractsHandler) Resolve(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	category := domain.Category(c.Query("category"))
	if !category.Valid() {
		return apperrors.NewValidationError("unknown category", map[string]any{"category": c.Query("category")})
	}
	companyCode := principal.CompanyCode
	if principal.Role == domain.RoleSystemAdmin && c.Query("company_code") != "" {
		companyCode = c.Query("company_code")
	}
	officeCode := c.Query("office_code")
	if officeCode == "" {
		officeCode = principal.OfficeCode
	}
	resolution, err := h.service.Resolve(c.Context(), companyCode, officeCode, category, nil, "")
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ResolvePartnerResponse{
		PartnerID:   resolution.PartnerID,
		PartnerName: resolution.PartnerName,
		Assigned:    resolution.Assigned(),
	}})
}

func toCategories(raw []string) []domain.Category {
	categories := make([]domain.Category, 0, len(raw))
	for _, value := range raw {
		categories = append(categories, domain.Category(value))
	}
	return categories
}
