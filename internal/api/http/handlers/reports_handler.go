package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/onetouch-fm/facility-service/internal/api/dto"
	"github.com/onetouch-fm/facility-service/internal/auth"
	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/service"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// ReportsHandler manages report endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// List GET /reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	filter := service.ReportListFilter{
		Search: queryStringPtr(c, "search"),
		Sort:   c.Query("sort"),
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.ReportStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("category"); raw != "" {
		category := domain.Category(raw)
		filter.Category = &category
	}
	reports, err := h.service.List(c.Context(), principal, filter)
	if err != nil {
		return err
	}
	responses := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, dto.NewReportResponse(&reports[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Get GET /reports/:id.
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	report, err := h.service.Get(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReportResponse(report)})
}

// Create POST /reports.
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" {
		return apperrors.NewValidationError("title required", nil)
	}
	report, err := h.service.Create(c.Context(), principal, service.ReportCreateInput{
		ItemID:      req.ItemID,
		Type:        req.Type,
		Title:       req.Title,
		Category:    domain.Category(req.Category),
		Description: req.Description,
		Location:    req.Location,
		OfficeCode:  req.OfficeCode,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewReportResponse(report)})
}

// UpdateStatus PATCH /reports/:id/status.
func (h *ReportsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}
	report, err := h.service.UpdateStatus(c.Context(), principal, c.Params("id"), req.Status, req.Memo)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReportResponse(report)})
}

// AddPhoto POST /reports/:id/photos.
func (h *ReportsHandler) AddPhoto(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AddReportPhotoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.StorageKey == "" || req.FileName == "" {
		return apperrors.NewValidationError("storage_key and file_name required", nil)
	}
	photo, err := h.service.AddPhoto(c.Context(), principal, c.Params("id"), req.StorageKey, req.FileName, req.MimeType)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewReportPhotoResponse(photo)})
}

// ListPhotos GET /reports/:id/photos.
func (h *ReportsHandler) ListPhotos(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	photos, err := h.service.ListPhotos(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	responses := make([]dto.ReportPhotoResponse, 0, len(photos))
	for i := range photos {
		responses = append(responses, dto.NewReportPhotoResponse(&photos[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}
