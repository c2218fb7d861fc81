package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/onetouch-fm/facility-service/internal/api/dto"
	"github.com/onetouch-fm/facility-service/internal/auth"
	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/service"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// ItemsHandler manages inventory endpoints.
type ItemsHandler struct {
	service *service.ItemService
}

// NewItemsHandler constructs handler.
func NewItemsHandler(itemService *service.ItemService) *ItemsHandler {
	return &ItemsHandler{service: itemService}
}

// List GET /items.
func (h *ItemsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	filter := service.ItemListFilter{
		Floor:  queryStringPtr(c, "floor"),
		Search: queryStringPtr(c, "search"),
		Sort:   c.Query("sort"),
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}
	if raw := c.Query("category"); raw != "" {
		category := domain.Category(raw)
		filter.Category = &category
	}
	items, err := h.service.List(c.Context(), principal, filter)
	if err != nil {
		return err
	}
	responses := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, dto.NewItemResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Stats GET /items/stats.
func (h *ItemsHandler) Stats(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	counts, floors, err := h.service.Stats(c.Context(), principal)
	if err != nil {
		return err
	}
	categories := make([]dto.CategoryCountResponse, 0, len(counts))
	for _, row := range counts {
		categories = append(categories, dto.CategoryCountResponse{
			Category: string(row.Category),
			Count:    row.Count,
		})
	}
	return c.JSON(fiber.Map{"data": dto.ItemStatsResponse{Categories: categories, Floors: floors}})
}

// Get GET /items/:id.
func (h *ItemsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	item, err := h.service.Get(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewItemResponse(item)})
}

// Create POST /items.
func (h *ItemsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	item, err := h.service.Create(c.Context(), principal, service.ItemCreateInput{
		Name:                req.Name,
		Category:            domain.Category(req.Category),
		Maker:               req.Maker,
		Model:               req.Model,
		Unit:                req.Unit,
		Price:               req.Price,
		Stock:               req.Stock,
		Description:         req.Description,
		Floor:               req.Floor,
		Location:            req.Location,
		OfficeCode:          req.OfficeCode,
		AssignedPartnerID:   req.AssignedPartnerID,
		AssignedPartnerName: req.AssignedPartnerName,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewItemResponse(item)})
}

// Update PUT /items/:id.
func (h *ItemsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.ItemUpdateInput{
		Name:                req.Name,
		Maker:               req.Maker,
		Model:               req.Model,
		Unit:                req.Unit,
		Price:               req.Price,
		Stock:               req.Stock,
		Description:         req.Description,
		Floor:               req.Floor,
		Location:            req.Location,
		AssignedPartnerID:   req.AssignedPartnerID,
		AssignedPartnerName: req.AssignedPartnerName,
		ClearPartner:        req.ClearPartner,
	}
	if req.Category != nil {
		category := domain.Category(*req.Category)
		input.Category = &category
	}
	item, err := h.service.Update(c.Context(), principal, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewItemResponse(item)})
}

// Delete DELETE /items/:id.
func (h *ItemsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Import POST /items/import.
func (h *ItemsHandler) Import(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ImportItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	rows := make([]service.ImportRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, service.ImportRow{
			Name:        row.Name,
			Category:    domain.Category(row.Category),
			Maker:       row.Maker,
			Model:       row.Model,
			Unit:        row.Unit,
			Price:       row.Price,
			Stock:       row.Stock,
			Description: row.Description,
			Floor:       row.Floor,
			Location:    row.Location,
		})
	}
	imported, err := h.service.Import(c.Context(), principal, req.OfficeCode, rows)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.ImportItemsResponse{Imported: imported}})
}
