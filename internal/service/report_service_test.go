package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/persistence"
	"github.com/onetouch-fm/facility-service/internal/repository"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

type fakeReportRepo struct {
	reports map[string]*domain.Report
	created []*domain.Report
	photos  map[string][]domain.ReportPhoto
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{
		reports: map[string]*domain.Report{},
		photos:  map[string][]domain.ReportPhoto{},
	}
}

func (f *fakeReportRepo) Create(_ context.Context, report *domain.Report) error {
	clone := *report
	f.reports[report.ID] = &clone
	f.created = append(f.created, report)
	return nil
}

func (f *fakeReportRepo) GetByID(_ context.Context, id string) (*domain.Report, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *report
	return &clone, nil
}

func (f *fakeReportRepo) List(_ context.Context, filter repository.ReportFilter) ([]domain.Report, error) {
	var out []domain.Report
	for _, report := range f.reports {
		if filter.CompanyCode != nil && report.CompanyCode != *filter.CompanyCode {
			continue
		}
		if filter.OfficeCode != nil && report.OfficeCode != *filter.OfficeCode {
			continue
		}
		if filter.PartnerID != nil {
			if report.AssignedPartnerID == nil || *report.AssignedPartnerID != *filter.PartnerID {
				continue
			}
		}
		out = append(out, *report)
	}
	return out, nil
}

func (f *fakeReportRepo) TransitionStatus(_ context.Context, id string, mutate func(report *domain.Report) error) (*domain.Report, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	working := *report
	if err := mutate(&working); err != nil {
		return nil, err
	}
	f.reports[id] = &working
	clone := working
	return &clone, nil
}

func (f *fakeReportRepo) CreatePhoto(_ context.Context, photo *domain.ReportPhoto) error {
	photo.ID = "generated-photo-id"
	f.photos[photo.ReportID] = append(f.photos[photo.ReportID], *photo)
	return nil
}

func (f *fakeReportRepo) ListPhotos(_ context.Context, reportID string) ([]domain.ReportPhoto, error) {
	return f.photos[reportID], nil
}

type fakeItemRepo struct {
	items map[string]*domain.Item
}

func (f *fakeItemRepo) Create(_ context.Context, item *domain.Item) error { return nil }
func (f *fakeItemRepo) Update(_ context.Context, item *domain.Item) error { return nil }

func (f *fakeItemRepo) GetByID(_ context.Context, itemID string) (*domain.Item, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *item
	return &clone, nil
}

func (f *fakeItemRepo) List(_ context.Context, _ repository.ItemFilter) ([]domain.Item, error) {
	return nil, nil
}

func (f *fakeItemRepo) Stats(_ context.Context, _, _, _ *string) ([]repository.CategoryCount, []string, error) {
	return nil, nil, nil
}

func (f *fakeItemRepo) MarkDeleted(_ context.Context, _ string) error        { return nil }
func (f *fakeItemRepo) ImportBatch(_ context.Context, _ []domain.Item) error { return nil }

type fakeContractRepo struct {
	active []domain.Contract
}

func (f *fakeContractRepo) Create(_ context.Context, _ *domain.Contract) error { return nil }
func (f *fakeContractRepo) Update(_ context.Context, _ *domain.Contract) error { return nil }

func (f *fakeContractRepo) GetByID(_ context.Context, _ string) (*domain.Contract, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeContractRepo) List(_ context.Context, _ repository.ContractFilter) ([]domain.Contract, error) {
	return nil, nil
}

func (f *fakeContractRepo) ListActiveByCompany(_ context.Context, companyCode string) ([]domain.Contract, error) {
	var out []domain.Contract
	for _, c := range f.active {
		if c.CompanyCode == companyCode {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContractRepo) Deactivate(_ context.Context, _ string) error { return nil }

func newReportService(reportRepo *fakeReportRepo, itemRepo *fakeItemRepo, contractRepo *fakeContractRepo) *ReportService {
	contracts := NewContractService(ContractDependencies{
		ContractRepo: contractRepo,
		PartnerRepo:  nil,
		Cache:        persistence.NewResolutionCache(nil),
	})
	return NewReportService(ReportDependencies{
		ReportRepo:      reportRepo,
		ItemRepo:        itemRepo,
		ContractService: contracts,
	})
}

func staffPrincipal() domain.Principal {
	return domain.Principal{ID: "acc-staff", Name: "Staff One", Role: domain.RoleStaff, CompanyCode: "C001", OfficeCode: "O001"}
}

func TestReportCreateRoutesThroughContracts(t *testing.T) {
	reportRepo := newFakeReportRepo()
	contractRepo := &fakeContractRepo{active: []domain.Contract{{
		ID:          "CNT-1",
		PartnerID:   "PTR-1",
		PartnerName: "Infra Partner",
		CompanyCode: "C001",
		Categories:  []domain.Category{domain.CategoryBuildingInfra},
		Status:      domain.RecordStatusActive,
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}}}
	svc := newReportService(reportRepo, &fakeItemRepo{items: map[string]*domain.Item{}}, contractRepo)

	report, err := svc.Create(context.Background(), staffPrincipal(), ReportCreateInput{
		Title:    "leaking pipe in basement",
		Category: domain.CategoryBuildingInfra,
	})
	require.NoError(t, err)
	require.NotNil(t, report.AssignedPartnerID)
	assert.Equal(t, "PTR-1", *report.AssignedPartnerID)
	assert.Equal(t, "Infra Partner", report.AssignedPartnerName)
	assert.Equal(t, domain.ReportStatusPending, report.Status)
	assert.Equal(t, "C001", report.CompanyCode)
	assert.Equal(t, "O001", report.OfficeCode, "office defaults to the reporter's office")
	assert.Equal(t, "acc-staff", report.ReporterID)
	assert.NotEmpty(t, report.ID)
}

func TestReportCreateUnmatchedStaysUnassigned(t *testing.T) {
	reportRepo := newFakeReportRepo()
	svc := newReportService(reportRepo, &fakeItemRepo{items: map[string]*domain.Item{}}, &fakeContractRepo{})

	report, err := svc.Create(context.Background(), staffPrincipal(), ReportCreateInput{
		Title:    "flickering hallway light",
		Category: domain.CategoryBuildingInfra,
	})
	require.NoError(t, err)
	assert.Nil(t, report.AssignedPartnerID)
	assert.Empty(t, report.AssignedPartnerName)
	assert.Equal(t, domain.ReportStatusPending, report.Status)
}

func TestReportCreateItemPinOverridesContracts(t *testing.T) {
	pinned := "PTR-pinned"
	itemRepo := &fakeItemRepo{items: map[string]*domain.Item{
		"ITEM-1": {
			ItemID:              "ITEM-1",
			CompanyCode:         "C001",
			OfficeCode:          "O001",
			Category:            domain.CategoryKitchenDining,
			AssignedPartnerID:   &pinned,
			AssignedPartnerName: "Pinned Kitchen Partner",
			Status:              domain.ItemStatusActive,
		},
	}}
	contractRepo := &fakeContractRepo{active: []domain.Contract{{
		ID:          "CNT-1",
		PartnerID:   "PTR-contract",
		PartnerName: "Contract Partner",
		CompanyCode: "C001",
		Categories:  []domain.Category{domain.CategoryKitchenDining},
		Status:      domain.RecordStatusActive,
	}}}
	reportRepo := newFakeReportRepo()
	svc := newReportService(reportRepo, itemRepo, contractRepo)

	itemID := "ITEM-1"
	report, err := svc.Create(context.Background(), staffPrincipal(), ReportCreateInput{
		ItemID: &itemID,
		Title:  "oven will not heat",
	})
	require.NoError(t, err)
	require.NotNil(t, report.AssignedPartnerID)
	assert.Equal(t, "PTR-pinned", *report.AssignedPartnerID)
	assert.Equal(t, domain.CategoryKitchenDining, report.Category, "category inherited from the item")
}

func TestReportCreateItemOutsideScopeDenied(t *testing.T) {
	itemRepo := &fakeItemRepo{items: map[string]*domain.Item{
		"ITEM-9": {
			ItemID:      "ITEM-9",
			CompanyCode: "C002",
			OfficeCode:  "O009",
			Category:    domain.CategoryOther,
			Status:      domain.ItemStatusActive,
		},
	}}
	svc := newReportService(newFakeReportRepo(), itemRepo, &fakeContractRepo{})

	itemID := "ITEM-9"
	_, err := svc.Create(context.Background(), staffPrincipal(), ReportCreateInput{
		ItemID: &itemID,
		Title:  "other company's asset",
	})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeWrongCompany, domainErr.Code)
}

func TestReportCreateRejectsContractor(t *testing.T) {
	partnerID := "PTR-1"
	contractor := domain.Principal{ID: "ct1", Role: domain.RoleContractor, PartnerID: &partnerID}
	svc := newReportService(newFakeReportRepo(), &fakeItemRepo{items: map[string]*domain.Item{}}, &fakeContractRepo{})

	_, err := svc.Create(context.Background(), contractor, ReportCreateInput{Title: "x"})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeRoleNotAllowed, domainErr.Code)
}

func TestReportCreateValidation(t *testing.T) {
	svc := newReportService(newFakeReportRepo(), &fakeItemRepo{items: map[string]*domain.Item{}}, &fakeContractRepo{})

	_, err := svc.Create(context.Background(), staffPrincipal(), ReportCreateInput{Title: ""})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestReportUpdateStatusHappyPath(t *testing.T) {
	reportRepo := newFakeReportRepo()
	reportRepo.reports["RPT-1"] = &domain.Report{
		ID:          "RPT-1",
		CompanyCode: "C001",
		OfficeCode:  "O001",
		Status:      domain.ReportStatusPending,
	}
	svc := newReportService(reportRepo, &fakeItemRepo{items: map[string]*domain.Item{}}, &fakeContractRepo{})

	memo := "started onsite work"
	report, err := svc.UpdateStatus(context.Background(), staffPrincipal(), "RPT-1", "in_progress", &memo)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusInProgress, report.Status)
	assert.Equal(t, memo, report.ContractorMemo)
	assert.Nil(t, report.CompletedAt)
	assert.Equal(t, domain.ReportStatusInProgress, reportRepo.reports["RPT-1"].Status, "mutation persisted")
}

func TestReportUpdateStatusCompletionStampsTimestamp(t *testing.T) {
	reportRepo := newFakeReportRepo()
	reportRepo.reports["RPT-1"] = &domain.Report{
		ID:          "RPT-1",
		CompanyCode: "C001",
		OfficeCode:  "O001",
		Status:      domain.ReportStatusInProgress,
	}
	svc := newReportService(reportRepo, &fakeItemRepo{items: map[string]*domain.Item{}}, &fakeContractRepo{})

	report, err := svc.UpdateStatus(context.Background(), staffPrincipal(), "RPT-1", "completed", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusCompleted, report.Status)
	require.NotNil(t, report.CompletedAt)
}

func TestReportUpdateStatusIllegalTransitionRollsBack(t *testing.T) {
	reportRepo := newFakeReportRepo()
	reportRepo.reports["RPT-1"] = &domain.Report{
		ID:          "RPT-1",
		CompanyCode: "C001",
		OfficeCode:  "O001",
		Status:      domain.ReportStatusCompleted,
	}
	svc := newReportService(reportRepo, &fakeItemRepo{items: map[string]*domain.Item{}}, &fakeContractRepo{})

	_, err := svc.UpdateStatus(context.Background(), staffPrincipal(), "RPT-1", "in_progress", nil)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeIllegalTransition, domainErr.Code)
	assert.Equal(t, domain.ReportStatusCompleted, reportRepo.reports["RPT-1"].Status, "status unchanged after denial")
}

func TestReportUpdateStatusUnknownStatus(t *testing.T) {
	svc := newReportService(newFakeReportRepo(), &fakeItemRepo{items: map[string]*domain.Item{}}, &fakeContractRepo{})

	_, err := svc.UpdateStatus(context.Background(), staffPrincipal(), "RPT-1", "reopened", nil)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeInvalidStatusValue, domainErr.Code)
}

func TestReportUpdateStatusNotFound(t *testing.T) {
	svc := newReportService(newFakeReportRepo(), &fakeItemRepo{items: map[string]*domain.Item{}}, &fakeContractRepo{})

	_, err := svc.UpdateStatus(context.Background(), staffPrincipal(), "RPT-missing", "in_progress", nil)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestReportGetContractorScope(t *testing.T) {
	reportRepo := newFakeReportRepo()
	assigned := "PTR-1"
	reportRepo.reports["RPT-1"] = &domain.Report{
		ID:                "RPT-1",
		CompanyCode:       "C001",
		OfficeCode:        "O001",
		Status:            domain.ReportStatusPending,
		AssignedPartnerID: &assigned,
	}
	svc := newReportService(reportRepo, &fakeItemRepo{items: map[string]*domain.Item{}}, &fakeContractRepo{})

	own := domain.Principal{ID: "ct1", Role: domain.RoleContractor, PartnerID: &assigned}
	report, err := svc.Get(context.Background(), own, "RPT-1")
	require.NoError(t, err)
	assert.Equal(t, "RPT-1", report.ID)

	other := "PTR-2"
	stranger := domain.Principal{ID: "ct2", Role: domain.RoleContractor, PartnerID: &other}
	_, err = svc.Get(context.Background(), stranger, "RPT-1")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeNotAssignedPartner, domainErr.Code)
}
