package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/onetouch-fm/facility-service/internal/api/dto"
	"github.com/onetouch-fm/facility-service/internal/auth"
	"github.com/onetouch-fm/facility-service/internal/service"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// AuditHandler serves the audit trail.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{service: auditService}
}

// List GET /audit-logs.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	rows, err := h.service.List(c.Context(), principal,
		queryStringPtr(c, "action"), queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return err
	}
	responses := make([]dto.AuditEventResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, dto.NewAuditEventResponse(&rows[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}
