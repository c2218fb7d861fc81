package service

import (
	"context"

	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/events"
	"github.com/onetouch-fm/facility-service/internal/rbac"
	"github.com/onetouch-fm/facility-service/internal/repository"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// AuditService records approved mutations and serves the audit trail.
type AuditService struct {
	audits repository.AuditRepository
}

// NewAuditService constructs the service.
func NewAuditService(audits repository.AuditRepository) *AuditService {
	return &AuditService{audits: audits}
}

// Record persists one event as an audit row. Called from the audit worker;
// there is no authorization because events are produced post-decision.
func (s *AuditService) Record(ctx context.Context, event events.Event) error {
	row := &domain.AuditEvent{
		CompanyCode: event.CompanyCode,
		OfficeCode:  event.OfficeCode,
		ActorID:     event.Actor.ID,
		ActorName:   event.Actor.Name,
		Action:      string(event.Action),
		TargetType:  event.TargetType,
		TargetID:    event.TargetID,
		Details:     event.Details,
	}
	return s.audits.Create(ctx, row)
}

// List returns the audit trail inside the caller's company scope.
func (s *AuditService) List(ctx context.Context, p domain.Principal, action *string, limit, offset int) ([]domain.AuditEvent, error) {
	decision := rbac.Authorize(p, contractManagerRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	rows, err := s.audits.List(ctx, repository.AuditFilter{
		CompanyCode: decision.Scope.CompanyFilter,
		Action:      action,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}
