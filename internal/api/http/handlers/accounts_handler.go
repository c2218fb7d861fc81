package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/onetouch-fm/facility-service/internal/api/dto"
	"github.com/onetouch-fm/facility-service/internal/auth"
	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/service"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// AccountsHandler manages account endpoints.
type AccountsHandler struct {
	service *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService) *AccountsHandler {
	return &AccountsHandler{service: accountService}
}

// List GET /accounts.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	filter := service.AccountListFilter{
		Search: queryStringPtr(c, "search"),
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}
	if raw := c.Query("role"); raw != "" {
		role := domain.Role(raw)
		filter.Role = &role
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.RecordStatus(raw)
		filter.Status = &status
	}
	accounts, err := h.service.List(c.Context(), principal, filter)
	if err != nil {
		return err
	}
	items := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, dto.NewAccountResponse(&accounts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /accounts/:id.
func (h *AccountsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	account, err := h.service.Get(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// Create POST /accounts.
func (h *AccountsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ID == "" || req.Name == "" || req.Role == "" {
		return apperrors.NewValidationError("id, name, role required", nil)
	}
	account, err := h.service.Create(c.Context(), principal, service.AccountCreateInput{
		ID:          req.ID,
		Name:        req.Name,
		Role:        domain.Role(req.Role),
		Password:    req.Password,
		CompanyCode: req.CompanyCode,
		OfficeCode:  req.OfficeCode,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// Update PUT /accounts/:id.
func (h *AccountsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.AccountUpdateInput{
		Name:       req.Name,
		OfficeCode: req.OfficeCode,
		Password:   req.Password,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}
	if req.Status != nil {
		status := domain.RecordStatus(*req.Status)
		input.Status = &status
	}
	account, err := h.service.Update(c.Context(), principal, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAccountResponse(account)})
}

// Delete DELETE /accounts/:id.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func queryStringPtr(c *fiber.Ctx, key string) *string {
	if raw := c.Query(key); raw != "" {
		return &raw
	}
	return nil
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
