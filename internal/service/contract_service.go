package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/events"
	"github.com/onetouch-fm/facility-service/internal/persistence"
	"github.com/onetouch-fm/facility-service/internal/rbac"
	"github.com/onetouch-fm/facility-service/internal/repository"
	"github.com/onetouch-fm/facility-service/internal/routing"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// contractManagerRoles may create or mutate contracts.
var contractManagerRoles = []domain.Role{domain.RoleCompanyAdmin, domain.RoleSystemAdmin}

// ContractService manages partner contracts and runs partner resolution.
type ContractService struct {
	contracts  repository.ContractRepository
	partners   repository.PartnerRepository
	cache      *persistence.ResolutionCache
	dispatcher events.Dispatcher
}

// ContractDependencies bundles collaborators for contract service.
type ContractDependencies struct {
	ContractRepo repository.ContractRepository
	PartnerRepo  repository.PartnerRepository
	Cache        *persistence.ResolutionCache
	Dispatcher   events.Dispatcher
}

// NewContractService constructs the service.
func NewContractService(deps ContractDependencies) *ContractService {
	return &ContractService{
		contracts:  deps.ContractRepo,
		partners:   deps.PartnerRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// ContractCreateInput describes contract creation payload.
type ContractCreateInput struct {
	PartnerID   string
	CompanyCode string
	OfficeCode  *string
	Categories  []domain.Category
	StartDate   *time.Time
	EndDate     *time.Time
	Notes       string
}

// ContractUpdateInput describes mutable contract fields.
type ContractUpdateInput struct {
	OfficeCode      *string
	ClearOfficeCode bool
	Categories      []domain.Category
	StartDate       *time.Time
	EndDate         *time.Time
	Notes           *string
	Status          *domain.RecordStatus
}

// ContractListFilter describes contract listing filters.
type ContractListFilter struct {
	PartnerID *string
	Status    *domain.RecordStatus
	Limit     int
	Offset    int
}

// List returns contracts inside the caller's company scope.
func (s *ContractService) List(ctx context.Context, p domain.Principal, filter ContractListFilter) ([]domain.Contract, error) {
	decision := rbac.Authorize(p, adminRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	repoFilter := repository.ContractFilter{
		CompanyCode: decision.Scope.CompanyFilter,
		PartnerID:   filter.PartnerID,
		Status:      filter.Status,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	return s.contracts.List(ctx, repoFilter)
}

// Get fetches one contract inside the caller's company.
func (s *ContractService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Contract, error) {
	contract, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	decision := rbac.Authorize(p, adminRoles, contractResource(contract))
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return contract, nil
}

// Create registers a contract binding a partner to categories. System admins
// may create contracts for any company; company admins only for their own.
func (s *ContractService) Create(ctx context.Context, p domain.Principal, input ContractCreateInput) (*domain.Contract, error) {
	decision := rbac.Authorize(p, contractManagerRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if len(input.Categories) == 0 {
		return nil, apperrors.NewValidationError("contract needs at least one category", nil)
	}
	for _, category := range input.Categories {
		if !category.Valid() {
			return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": string(category)})
		}
	}

	companyCode := p.CompanyCode
	if p.Role == domain.RoleSystemAdmin && input.CompanyCode != "" {
		companyCode = input.CompanyCode
	}

	partner, err := s.partners.GetByID(ctx, input.PartnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("partner", map[string]any{"partner_id": input.PartnerID})
		}
		return nil, apperrors.MapError(err)
	}

	contract := &domain.Contract{
		ID:          generateID("CNT"),
		PartnerID:   partner.ID,
		PartnerName: partner.Name,
		CompanyCode: companyCode,
		OfficeCode:  input.OfficeCode,
		Categories:  input.Categories,
		Status:      domain.RecordStatusActive,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Notes:       input.Notes,
	}
	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx, companyCode)
	s.publish(ctx, p, events.ActionContractCreate, contract, map[string]any{
		"partner_id": contract.PartnerID,
		"categories": contract.Categories,
	})
	return contract, nil
}

// Update modifies a contract inside the caller's company.
func (s *ContractService) Update(ctx context.Context, p domain.Principal, id string, input ContractUpdateInput) (*domain.Contract, error) {
	contract, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	decision := rbac.Authorize(p, contractManagerRoles, contractResource(contract))
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if input.ClearOfficeCode {
		contract.OfficeCode = nil
	} else if input.OfficeCode != nil {
		contract.OfficeCode = input.OfficeCode
	}
	if input.Categories != nil {
		if len(input.Categories) == 0 {
			return nil, apperrors.NewValidationError("contract needs at least one category", nil)
		}
		for _, category := range input.Categories {
			if !category.Valid() {
				return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": string(category)})
			}
		}
		contract.Categories = input.Categories
	}
	if input.StartDate != nil {
		contract.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		contract.EndDate = input.EndDate
	}
	if input.Notes != nil {
		contract.Notes = *input.Notes
	}
	if input.Status != nil {
		if *input.Status != domain.RecordStatusActive && *input.Status != domain.RecordStatusInactive {
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(*input.Status)})
		}
		contract.Status = *input.Status
	}

	if err := s.contracts.Update(ctx, contract); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx, contract.CompanyCode)
	s.publish(ctx, p, events.ActionContractUpdate, contract, map[string]any{"partner_id": contract.PartnerID})
	return contract, nil
}

// Delete deactivates a contract; history is preserved.
func (s *ContractService) Delete(ctx context.Context, p domain.Principal, id string) error {
	contract, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	decision := rbac.AuthorizeDelete(p, contractManagerRoles, *contractResource(contract))
	if err := decision.Err(); err != nil {
		return err
	}
	if err := s.contracts.Deactivate(ctx, contract.ID); err != nil {
		return apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx, contract.CompanyCode)
	s.publish(ctx, p, events.ActionContractDelete, contract, map[string]any{"partner_id": contract.PartnerID})
	return nil
}

// Resolve answers which partner is responsible for a category at an office.
// Results, including the unassigned one, are memoized until the company's
// contract set changes.
func (s *ContractService) Resolve(ctx context.Context, companyCode, officeCode string, category domain.Category, pinnedID *string, pinnedName string) (routing.Resolution, error) {
	query := routing.Query{
		Category:          category,
		CompanyCode:       companyCode,
		OfficeCode:        officeCode,
		PinnedPartnerID:   pinnedID,
		PinnedPartnerName: pinnedName,
	}
	// A pin bypasses both the contract set and the cache.
	if query.PinnedPartnerID != nil && *query.PinnedPartnerID != "" {
		return routing.ResolvePartner(nil, query), nil
	}

	if cached, ok := s.cache.Get(ctx, companyCode, officeCode, category); ok {
		return cached, nil
	}
	contracts, err := s.contracts.ListActiveByCompany(ctx, companyCode)
	if err != nil {
		return routing.Resolution{}, apperrors.MapError(err)
	}
	res := routing.ResolvePartner(contracts, query)
	s.cache.Put(ctx, companyCode, officeCode, category, res)
	return res, nil
}

func (s *ContractService) fetch(ctx context.Context, id string) (*domain.Contract, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("contract", map[string]any{"contract_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return contract, nil
}

func contractResource(contract *domain.Contract) *rbac.Resource {
	officeCode := ""
	if contract.OfficeCode != nil {
		officeCode = *contract.OfficeCode
	}
	return &rbac.Resource{
		Type:        "contract",
		ID:          contract.ID,
		CompanyCode: contract.CompanyCode,
		OfficeCode:  officeCode,
	}
}

func (s *ContractService) publish(ctx context.Context, p domain.Principal, action events.Action, contract *domain.Contract, details map[string]any) {
	if s.dispatcher == nil {
		return
	}
	targetID := contract.ID
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Action:      action,
		CompanyCode: contract.CompanyCode,
		OfficeCode:  contract.OfficeCode,
		Actor:       events.ActorFromPrincipal(p),
		TargetType:  "contract",
		TargetID:    &targetID,
		Details:     details,
		Timestamp:   time.Now(),
	})
}
