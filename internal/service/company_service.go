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

// systemRoles gates operations reserved for platform operators.
var systemRoles = []domain.Role{domain.RoleSystemAdmin}

// CompanyService manages tenant companies.
type CompanyService struct {
	companies  repository.CompanyRepository
	dispatcher events.Dispatcher
}

// NewCompanyService constructs the service.
func NewCompanyService(companies repository.CompanyRepository, dispatcher events.Dispatcher) *CompanyService {
	return &CompanyService{companies: companies, dispatcher: dispatcher}
}

// CompanyInput describes company payload fields.
type CompanyInput struct {
	Code       string
	Name       string
	PostalCode string
	Prefecture string
	Address    string
	Phone      string
	Email      string
}

// List returns companies. System admins see every tenant; everyone else only
// their own company.
func (s *CompanyService) List(ctx context.Context, p domain.Principal, search *string, limit, offset int) ([]domain.Company, error) {
	decision := rbac.Authorize(p, adminRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return s.companies.List(ctx, repository.CompanyFilter{
		Code:   decision.Scope.CompanyFilter,
		Search: search,
		Limit:  limit,
		Offset: offset,
	})
}

// Get fetches one company inside the caller's scope.
func (s *CompanyService) Get(ctx context.Context, p domain.Principal, code string) (*domain.Company, error) {
	decision := rbac.Authorize(p, adminRoles, &rbac.Resource{Type: "company", ID: code, CompanyCode: code})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return s.fetch(ctx, code)
}

// Create registers a tenant company. System admin only.
func (s *CompanyService) Create(ctx context.Context, p domain.Principal, input CompanyInput) (*domain.Company, error) {
	decision := rbac.Authorize(p, systemRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if input.Code == "" || input.Name == "" {
		return nil, apperrors.NewValidationError("code and name are required", nil)
	}
	if existing, err := s.companies.GetByCode(ctx, input.Code); err == nil && existing != nil {
		return nil, apperrors.NewConflict("company code already exists", map[string]any{"code": input.Code})
	}

	company := &domain.Company{
		Code:       input.Code,
		Name:       input.Name,
		PostalCode: input.PostalCode,
		Prefecture: input.Prefecture,
		Address:    input.Address,
		Phone:      input.Phone,
		Email:      input.Email,
		Status:     domain.RecordStatusActive,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionCompanyCreate, company)
	return company, nil
}

// Update modifies a company. Company admins may edit their own company;
// system admins any.
func (s *CompanyService) Update(ctx context.Context, p domain.Principal, code string, input CompanyInput) (*domain.Company, error) {
	company, err := s.fetch(ctx, code)
	if err != nil {
		return nil, err
	}
	decision := rbac.Authorize(p, contractManagerRoles, &rbac.Resource{Type: "company", ID: code, CompanyCode: code})
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if input.Name != "" {
		company.Name = input.Name
	}
	if input.PostalCode != "" {
		company.PostalCode = input.PostalCode
	}
	if input.Prefecture != "" {
		company.Prefecture = input.Prefecture
	}
	if input.Address != "" {
		company.Address = input.Address
	}
	if input.Phone != "" {
		company.Phone = input.Phone
	}
	if input.Email != "" {
		company.Email = input.Email
	}

	if err := s.companies.Update(ctx, company); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionCompanyUpdate, company)
	return company, nil
}

func (s *CompanyService) fetch(ctx context.Context, code string) (*domain.Company, error) {
	company, err := s.companies.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("company", map[string]any{"code": code})
		}
		return nil, apperrors.MapError(err)
	}
	return company, nil
}

func (s *CompanyService) publish(ctx context.Context, p domain.Principal, action events.Action, company *domain.Company) {
	if s.dispatcher == nil {
		return
	}
	targetID := company.Code
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Action:      action,
		CompanyCode: company.Code,
		Actor:       events.ActorFromPrincipal(p),
		TargetType:  "company",
		TargetID:    &targetID,
		Details:     map[string]any{"name": company.Name},
		Timestamp:   time.Now(),
	})
}
