package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetouch-fm/facility-service/internal/domain"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

func strPtr(s string) *string { return &s }

func sampleReport(status domain.ReportStatus) *domain.Report {
	return &domain.Report{
		ID:                "RPT-1",
		CompanyCode:       "C001",
		OfficeCode:        "O001",
		Category:          domain.CategoryBuildingInfra,
		Status:            status,
		AssignedPartnerID: strPtr("PTR-1"),
		CreatedAt:         time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
	}
}

func officeAdmin() domain.Principal {
	return domain.Principal{ID: "oa1", Role: domain.RoleOfficeAdmin, CompanyCode: "C001", OfficeCode: "O001"}
}

func assertCode(t *testing.T, err error, code string, status int) {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
	assert.Equal(t, status, domainErr.HTTPStatus)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusInProgress, status)

	_, err = ParseStatus("reopened")
	assertCode(t, err, apperrors.CodeInvalidStatusValue, 400)
}

func TestCanTransitionForwardMoves(t *testing.T) {
	actor := officeAdmin()

	assert.NoError(t, CanTransition(actor, sampleReport(domain.ReportStatusPending), domain.ReportStatusInProgress))
	assert.NoError(t, CanTransition(actor, sampleReport(domain.ReportStatusPending), domain.ReportStatusCompleted))
	assert.NoError(t, CanTransition(actor, sampleReport(domain.ReportStatusPending), domain.ReportStatusCancelled))
	assert.NoError(t, CanTransition(actor, sampleReport(domain.ReportStatusInProgress), domain.ReportStatusCompleted))
	assert.NoError(t, CanTransition(actor, sampleReport(domain.ReportStatusInProgress), domain.ReportStatusCancelled))
}

func TestCanTransitionRejectsBackwardMoves(t *testing.T) {
	actor := officeAdmin()

	err := CanTransition(actor, sampleReport(domain.ReportStatusInProgress), domain.ReportStatusPending)
	assertCode(t, err, apperrors.CodeIllegalTransition, 400)
}

func TestCanTransitionTerminalStatesRejectEverything(t *testing.T) {
	actor := officeAdmin()

	for _, terminal := range []domain.ReportStatus{domain.ReportStatusCompleted, domain.ReportStatusCancelled} {
		for _, next := range []domain.ReportStatus{
			domain.ReportStatusPending, domain.ReportStatusInProgress,
			domain.ReportStatusCompleted, domain.ReportStatusCancelled,
		} {
			err := CanTransition(actor, sampleReport(terminal), next)
			assertCode(t, err, apperrors.CodeIllegalTransition, 400)
		}
	}
}

func TestCanTransitionInvalidTargetStatus(t *testing.T) {
	err := CanTransition(officeAdmin(), sampleReport(domain.ReportStatusPending), domain.ReportStatus("archived"))
	assertCode(t, err, apperrors.CodeInvalidStatusValue, 400)
}

func TestCanTransitionContractorMustBeAssigned(t *testing.T) {
	assigned := domain.Principal{ID: "ct1", Role: domain.RoleContractor, PartnerID: strPtr("PTR-1")}
	other := domain.Principal{ID: "ct2", Role: domain.RoleContractor, PartnerID: strPtr("PTR-2")}

	assert.NoError(t, CanTransition(assigned, sampleReport(domain.ReportStatusPending), domain.ReportStatusInProgress))

	err := CanTransition(other, sampleReport(domain.ReportStatusPending), domain.ReportStatusInProgress)
	assertCode(t, err, apperrors.CodeNotAssignedPartner, 403)
}

func TestCanTransitionScopeDenials(t *testing.T) {
	otherCompany := domain.Principal{ID: "ca1", Role: domain.RoleCompanyAdmin, CompanyCode: "C002", OfficeCode: "O009"}
	err := CanTransition(otherCompany, sampleReport(domain.ReportStatusPending), domain.ReportStatusInProgress)
	assertCode(t, err, apperrors.CodeWrongCompany, 403)

	otherOffice := domain.Principal{ID: "s1", Role: domain.RoleStaff, CompanyCode: "C001", OfficeCode: "O002"}
	err = CanTransition(otherOffice, sampleReport(domain.ReportStatusPending), domain.ReportStatusInProgress)
	assertCode(t, err, apperrors.CodeWrongOffice, 403)
}

func TestApplyTransitionStampsCompletion(t *testing.T) {
	now := time.Date(2026, 2, 2, 10, 30, 0, 0, time.UTC)
	memo := "replaced the broken fixture"

	report := sampleReport(domain.ReportStatusInProgress)
	old := ApplyTransition(report, domain.ReportStatusCompleted, &memo, now)

	assert.Equal(t, domain.ReportStatusInProgress, old)
	assert.Equal(t, domain.ReportStatusCompleted, report.Status)
	require.NotNil(t, report.CompletedAt)
	assert.Equal(t, now, *report.CompletedAt)
	assert.Equal(t, memo, report.ContractorMemo)
	assert.Equal(t, now, report.UpdatedAt)
}

func TestApplyTransitionWithoutCompletion(t *testing.T) {
	now := time.Date(2026, 2, 2, 10, 30, 0, 0, time.UTC)

	report := sampleReport(domain.ReportStatusPending)
	old := ApplyTransition(report, domain.ReportStatusInProgress, nil, now)

	assert.Equal(t, domain.ReportStatusPending, old)
	assert.Equal(t, domain.ReportStatusInProgress, report.Status)
	assert.Nil(t, report.CompletedAt)
	assert.Empty(t, report.ContractorMemo)
}

func TestApplyTransitionMemoOnCancellation(t *testing.T) {
	now := time.Date(2026, 2, 2, 10, 30, 0, 0, time.UTC)
	memo := "duplicate of an earlier report"

	report := sampleReport(domain.ReportStatusPending)
	ApplyTransition(report, domain.ReportStatusCancelled, &memo, now)

	assert.Equal(t, domain.ReportStatusCancelled, report.Status)
	assert.Nil(t, report.CompletedAt, "only completion stamps the timestamp")
	assert.Equal(t, memo, report.ContractorMemo)
}
