package dto

import (
	"time"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// AuditEventResponse is one row of the audit trail.
type AuditEventResponse struct {
	ID          string         `json:"id"`
	CompanyCode string         `json:"company_code"`
	OfficeCode  *string        `json:"office_code,omitempty"`
	ActorID     string         `json:"actor_id"`
	ActorName   string         `json:"actor_name"`
	Action      string         `json:"action"`
	TargetType  string         `json:"target_type"`
	TargetID    *string        `json:"target_id,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewAuditEventResponse maps an audit row.
func NewAuditEventResponse(event *domain.AuditEvent) AuditEventResponse {
	return AuditEventResponse{
		ID:          event.ID,
		CompanyCode: event.CompanyCode,
		OfficeCode:  event.OfficeCode,
		ActorID:     event.ActorID,
		ActorName:   event.ActorName,
		Action:      event.Action,
		TargetType:  event.TargetType,
		TargetID:    event.TargetID,
		Details:     event.Details,
		CreatedAt:   event.CreatedAt,
	}
}
