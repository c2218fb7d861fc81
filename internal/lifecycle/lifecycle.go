// Package lifecycle governs report status transitions. All checks are pure
// functions of the principal, the report's current persisted state, and the
// static transition table; callers are responsible for running read, check,
// and write inside one transaction so concurrent updates cannot race past a
// stale status.
package lifecycle

import (
	"time"

	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/rbac"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// allowedTransitions fixes the state machine. Completed and cancelled are
// terminal; there is no reopen path.
var allowedTransitions = map[domain.ReportStatus][]domain.ReportStatus{
	domain.ReportStatusPending:    {domain.ReportStatusInProgress, domain.ReportStatusCompleted, domain.ReportStatusCancelled},
	domain.ReportStatusInProgress: {domain.ReportStatusCompleted, domain.ReportStatusCancelled},
	domain.ReportStatusCompleted:  {},
	domain.ReportStatusCancelled:  {},
}

// ParseStatus validates a raw status value. An unknown value is a caller
// validation error, not a state-machine denial.
func ParseStatus(raw string) (domain.ReportStatus, error) {
	status := domain.ReportStatus(raw)
	if !status.Valid() {
		return "", apperrors.NewEngineValidation(apperrors.CodeInvalidStatusValue,
			"unknown report status", map[string]any{"status": raw})
	}
	return status, nil
}

// CanTransition checks whether the actor may move the report to newStatus.
// Terminal states reject everything; contractors must be the assigned
// partner; company-hierarchy actors must be inside their resolved scope.
func CanTransition(actor domain.Principal, report *domain.Report, newStatus domain.ReportStatus) error {
	if !newStatus.Valid() {
		return apperrors.NewEngineValidation(apperrors.CodeInvalidStatusValue,
			"unknown report status", map[string]any{"status": string(newStatus)})
	}

	decision := rbac.AuthorizeResourceAccess(actor, rbac.Resource{
		Type:              "report",
		ID:                report.ID,
		CompanyCode:       report.CompanyCode,
		OfficeCode:        report.OfficeCode,
		AssignedPartnerID: report.AssignedPartnerID,
	})
	if !decision.Allowed {
		return decision.Err()
	}

	if report.Status.Terminal() {
		return apperrors.NewEngineValidation(apperrors.CodeIllegalTransition,
			"report is in a terminal state", map[string]any{
				"current": string(report.Status),
				"next":    string(newStatus),
			})
	}
	for _, candidate := range allowedTransitions[report.Status] {
		if candidate == newStatus {
			return nil
		}
	}
	return apperrors.NewEngineValidation(apperrors.CodeIllegalTransition,
		"transition not permitted from current state", map[string]any{
			"current": string(report.Status),
			"next":    string(newStatus),
		})
}

// ApplyTransition commits the new status onto the report and returns the old
// one. CompletedAt is stamped exactly when the report completes; a memo, when
// given, is attached regardless of the resulting status.
func ApplyTransition(report *domain.Report, newStatus domain.ReportStatus, memo *string, now time.Time) domain.ReportStatus {
	oldStatus := report.Status
	report.Status = newStatus
	if newStatus == domain.ReportStatusCompleted {
		report.CompletedAt = &now
	}
	if memo != nil {
		report.ContractorMemo = *memo
	}
	report.UpdatedAt = now
	return oldStatus
}
