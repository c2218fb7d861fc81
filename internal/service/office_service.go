package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/events"
	"github.com/onetouch-fm/facility-service/internal/rbac"
	"github.com/onetouch-fm/facility-service/internal/repository"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// OfficeService manages offices within a company.
type OfficeService struct {
	offices    repository.OfficeRepository
	companies  repository.CompanyRepository
	dispatcher events.Dispatcher
}

// NewOfficeService constructs the service.
func NewOfficeService(offices repository.OfficeRepository, companies repository.CompanyRepository, dispatcher events.Dispatcher) *OfficeService {
	return &OfficeService{offices: offices, companies: companies, dispatcher: dispatcher}
}

// OfficeInput describes office payload fields.
type OfficeInput struct {
	Code        string
	CompanyCode string
	Name        string
	Address     string
	Phone       string
}

// List returns offices inside the caller's company scope.
func (s *OfficeService) List(ctx context.Context, p domain.Principal, search *string, limit, offset int) ([]domain.Office, error) {
	decision := rbac.Authorize(p, adminRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return s.offices.List(ctx, repository.OfficeFilter{
		CompanyCode: decision.Scope.CompanyFilter,
		Search:      search,
		Limit:       limit,
		Offset:      offset,
	})
}

// Get fetches one office inside the caller's company.
func (s *OfficeService) Get(ctx context.Context, p domain.Principal, code string) (*domain.Office, error) {
	office, err := s.fetch(ctx, code)
	if err != nil {
		return nil, err
	}
	decision := rbac.Authorize(p, adminRoles, officeResource(office))
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return office, nil
}

// Create registers an office. Company admins create inside their own company;
// system admins may name any company.
func (s *OfficeService) Create(ctx context.Context, p domain.Principal, input OfficeInput) (*domain.Office, error) {
	decision := rbac.Authorize(p, contractManagerRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if input.Code == "" || input.Name == "" {
		return nil, apperrors.NewValidationError("code and name are required", nil)
	}

	companyCode := p.CompanyCode
	if p.Role == domain.RoleSystemAdmin && input.CompanyCode != "" {
		companyCode = input.CompanyCode
	}
	company, err := s.companies.GetByCode(ctx, companyCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("company", map[string]any{"code": companyCode})
		}
		return nil, apperrors.MapError(err)
	}
	if existing, err := s.offices.GetByCode(ctx, input.Code); err == nil && existing != nil {
		return nil, apperrors.NewConflict("office code already exists", map[string]any{"code": input.Code})
	}

	office := &domain.Office{
		Code:        input.Code,
		CompanyCode: company.Code,
		CompanyName: company.Name,
		Name:        input.Name,
		Address:     input.Address,
		Phone:       input.Phone,
		Status:      domain.RecordStatusActive,
	}
	if err := s.offices.Create(ctx, office); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionOfficeCreate, office)
	return office, nil
}

// Update modifies an office inside the caller's company.
func (s *OfficeService) Update(ctx context.Context, p domain.Principal, code string, input OfficeInput) (*domain.Office, error) {
	office, err := s.fetch(ctx, code)
	if err != nil {
		return nil, err
	}
	decision := rbac.Authorize(p, contractManagerRoles, officeResource(office))
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if input.Name != "" {
		office.Name = input.Name
	}
	if input.Address != "" {
		office.Address = input.Address
	}
	if input.Phone != "" {
		office.Phone = input.Phone
	}

	if err := s.offices.Update(ctx, office); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionOfficeUpdate, office)
	return office, nil
}

// Delete deactivates an office.
func (s *OfficeService) Delete(ctx context.Context, p domain.Principal, code string) error {
	office, err := s.fetch(ctx, code)
	if err != nil {
		return err
	}
	decision := rbac.AuthorizeDelete(p, contractManagerRoles, *officeResource(office))
	if err := decision.Err(); err != nil {
		return err
	}
	if err := s.offices.Deactivate(ctx, office.Code); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionOfficeDelete, office)
	return nil
}

func (s *OfficeService) fetch(ctx context.Context, code string) (*domain.Office, error) {
	office, err := s.offices.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("office", map[string]any{"code": code})
		}
		return nil, apperrors.MapError(err)
	}
	return office, nil
}

func officeResource(office *domain.Office) *rbac.Resource {
	return &rbac.Resource{
		Type:        "office",
		ID:          office.Code,
		CompanyCode: office.CompanyCode,
		OfficeCode:  office.Code,
	}
}

func (s *OfficeService) publish(ctx context.Context, p domain.Principal, action events.Action, office *domain.Office) {
	if s.dispatcher == nil {
		return
	}
	targetID := office.Code
	officeCode := office.Code
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Action:      action,
		CompanyCode: office.CompanyCode,
		OfficeCode:  &officeCode,
		Actor:       events.ActorFromPrincipal(p),
		TargetType:  "office",
		TargetID:    &targetID,
		Details:     map[string]any{"name": office.Name},
		Timestamp:   time.Now(),
	})
}
