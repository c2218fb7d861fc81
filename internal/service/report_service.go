package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/events"
	"github.com/onetouch-fm/facility-service/internal/lifecycle"
	"github.com/onetouch-fm/facility-service/internal/rbac"
	"github.com/onetouch-fm/facility-service/internal/repository"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// reporterRoles may file reports.
var reporterRoles = []domain.Role{
	domain.RoleStaff,
	domain.RoleOfficeAdmin,
	domain.RoleCompanyAdmin,
	domain.RoleSystemAdmin,
}

// ReportService owns report creation with partner resolution, scoped
// listing, and guarded status transitions.
type ReportService struct {
	reports    repository.ReportRepository
	items      repository.ItemRepository
	contracts  *ContractService
	dispatcher events.Dispatcher
}

// ReportDependencies bundles collaborators for report service.
type ReportDependencies struct {
	ReportRepo      repository.ReportRepository
	ItemRepo        repository.ItemRepository
	ContractService *ContractService
	Dispatcher      events.Dispatcher
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		reports:    deps.ReportRepo,
		items:      deps.ItemRepo,
		contracts:  deps.ContractService,
		dispatcher: deps.Dispatcher,
	}
}

// ReportCreateInput describes report creation payload.
type ReportCreateInput struct {
	ItemID      *string
	Type        string
	Title       string
	Category    domain.Category
	Description string
	Location    string
	OfficeCode  string
}

// ReportListFilter describes report listing filters.
type ReportListFilter struct {
	Status   *domain.ReportStatus
	Category *domain.Category
	Search   *string
	Sort     string
	Limit    int
	Offset   int
}

// List returns reports inside the caller's scope. Contractors get only
// reports routed to their partner.
func (s *ReportService) List(ctx context.Context, p domain.Principal, filter ReportListFilter) ([]domain.Report, error) {
	decision := rbac.Authorize(p, nil, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	repoFilter := repository.ReportFilter{
		CompanyCode: decision.Scope.CompanyFilter,
		OfficeCode:  decision.Scope.OfficeFilter,
		PartnerID:   decision.Scope.PartnerFilter,
		Status:      filter.Status,
		Category:    filter.Category,
		Search:      filter.Search,
		Sort:        filter.Sort,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	return s.reports.List(ctx, repoFilter)
}

// Get fetches one report inside the caller's scope.
func (s *ReportService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Report, error) {
	report, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	decision := rbac.Authorize(p, nil, reportResource(report))
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return report, nil
}

// Create files a report and resolves the responsible partner at creation
// time. An item's pinned partner outranks contract routing; no match leaves
// the report unassigned for manual triage.
func (s *ReportService) Create(ctx context.Context, p domain.Principal, input ReportCreateInput) (*domain.Report, error) {
	decision := rbac.Authorize(p, reporterRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if input.Category != "" && !input.Category.Valid() {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": string(input.Category)})
	}

	companyCode := p.CompanyCode
	officeCode := input.OfficeCode
	if officeCode == "" {
		officeCode = p.OfficeCode
	}

	category := input.Category
	var pinnedID *string
	pinnedName := ""
	if input.ItemID != nil && *input.ItemID != "" {
		item, err := s.items.GetByID(ctx, *input.ItemID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("item", map[string]any{"item_id": *input.ItemID})
			}
			return nil, apperrors.MapError(err)
		}
		itemDecision := rbac.AuthorizeResourceAccess(p, *itemResource(item))
		if err := itemDecision.Err(); err != nil {
			return nil, err
		}
		if category == "" {
			category = item.Category
		}
		companyCode = item.CompanyCode
		officeCode = item.OfficeCode
		pinnedID = item.AssignedPartnerID
		pinnedName = item.AssignedPartnerName
	}

	resolution, err := s.contracts.Resolve(ctx, companyCode, officeCode, category, pinnedID, pinnedName)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		ID:                  generateID("RPT"),
		CompanyCode:         companyCode,
		OfficeCode:          officeCode,
		ItemID:              input.ItemID,
		Type:                input.Type,
		Title:               input.Title,
		Category:            category,
		Description:         input.Description,
		Location:            input.Location,
		Status:              domain.ReportStatusPending,
		AssignedPartnerID:   resolution.PartnerID,
		AssignedPartnerName: resolution.PartnerName,
		ReporterID:          p.ID,
		ReporterName:        p.Name,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionReportCreate, report, map[string]any{
		"title":    report.Title,
		"category": string(report.Category),
		"assigned": resolution.Assigned(),
	})
	return report, nil
}

// UpdateStatus transitions a report. The current status is re-read under a
// row lock so two concurrent updates serialize; the loser revalidates against
// the winner's result and fails if the transition is no longer legal.
func (s *ReportService) UpdateStatus(ctx context.Context, p domain.Principal, id, rawStatus string, memo *string) (*domain.Report, error) {
	newStatus, err := lifecycle.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	var oldStatus domain.ReportStatus
	report, err := s.reports.TransitionStatus(ctx, id, func(report *domain.Report) error {
		if err := lifecycle.CanTransition(p, report, newStatus); err != nil {
			return err
		}
		oldStatus = lifecycle.ApplyTransition(report, newStatus, memo, time.Now())
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("report", map[string]any{"report_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, p, events.ActionReportStatusUpdate, report, map[string]any{
		"old_status": string(oldStatus),
		"new_status": string(report.Status),
	})
	return report, nil
}

// AddPhoto attaches photo metadata to a report the caller can access.
func (s *ReportService) AddPhoto(ctx context.Context, p domain.Principal, reportID, storageKey, fileName, mimeType string) (*domain.ReportPhoto, error) {
	report, err := s.fetch(ctx, reportID)
	if err != nil {
		return nil, err
	}
	decision := rbac.Authorize(p, nil, reportResource(report))
	if err := decision.Err(); err != nil {
		return nil, err
	}
	photo := &domain.ReportPhoto{
		ReportID:   report.ID,
		StorageKey: storageKey,
		FileName:   fileName,
		MimeType:   mimeType,
	}
	if err := s.reports.CreatePhoto(ctx, photo); err != nil {
		return nil, apperrors.MapError(err)
	}
	return photo, nil
}

// ListPhotos returns photo metadata for a report the caller can access.
func (s *ReportService) ListPhotos(ctx context.Context, p domain.Principal, reportID string) ([]domain.ReportPhoto, error) {
	report, err := s.fetch(ctx, reportID)
	if err != nil {
		return nil, err
	}
	decision := rbac.Authorize(p, nil, reportResource(report))
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return s.reports.ListPhotos(ctx, reportID)
}

func (s *ReportService) fetch(ctx context.Context, id string) (*domain.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("report", map[string]any{"report_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return report, nil
}

func reportResource(report *domain.Report) *rbac.Resource {
	return &rbac.Resource{
		Type:              "report",
		ID:                report.ID,
		CompanyCode:       report.CompanyCode,
		OfficeCode:        report.OfficeCode,
		AssignedPartnerID: report.AssignedPartnerID,
	}
}

func (s *ReportService) publish(ctx context.Context, p domain.Principal, action events.Action, report *domain.Report, details map[string]any) {
	if s.dispatcher == nil {
		return
	}
	targetID := report.ID
	officeCode := report.OfficeCode
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Action:      action,
		CompanyCode: report.CompanyCode,
		OfficeCode:  &officeCode,
		Actor:       events.ActorFromPrincipal(p),
		TargetType:  "report",
		TargetID:    &targetID,
		Details:     details,
		Timestamp:   time.Now(),
	})
}
