package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/onetouch-fm/facility-service/internal/auth"
	"github.com/onetouch-fm/facility-service/internal/config"
	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/events"
	"github.com/onetouch-fm/facility-service/internal/rbac"
	"github.com/onetouch-fm/facility-service/internal/repository"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// adminRoles may manage accounts.
var adminRoles = []domain.Role{domain.RoleOfficeAdmin, domain.RoleCompanyAdmin, domain.RoleSystemAdmin}

// AccountService coordinates account administration.
type AccountService struct {
	accounts   repository.AccountRepository
	companies  repository.CompanyRepository
	offices    repository.OfficeRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// AccountDependencies bundles repositories for account service.
type AccountDependencies struct {
	AccountRepo repository.AccountRepository
	CompanyRepo repository.CompanyRepository
	OfficeRepo  repository.OfficeRepository
	Dispatcher  events.Dispatcher
}

// NewAccountService constructs the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	return &AccountService{
		accounts:   deps.AccountRepo,
		companies:  deps.CompanyRepo,
		offices:    deps.OfficeRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// AccountCreateInput describes account creation payload.
type AccountCreateInput struct {
	ID          string
	Name        string
	Role        domain.Role
	Password    string
	CompanyCode string
	OfficeCode  string
}

// AccountUpdateInput describes mutable account fields.
type AccountUpdateInput struct {
	Name       *string
	Role       *domain.Role
	OfficeCode *string
	Status     *domain.RecordStatus
	Password   *string
}

// AccountListFilter describes account listing filters.
type AccountListFilter struct {
	Role   *domain.Role
	Status *domain.RecordStatus
	Search *string
	Limit  int
	Offset int
}

// List returns accounts inside the caller's scope. Rows above the caller's
// own level are filtered out via the role-visibility rule; system_admin sees
// everything.
func (s *AccountService) List(ctx context.Context, p domain.Principal, filter AccountListFilter) ([]domain.Account, error) {
	decision := rbac.Authorize(p, adminRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}

	repoFilter := repository.AccountFilter{
		CompanyCode: decision.Scope.CompanyFilter,
		OfficeCode:  decision.Scope.OfficeFilter,
		Role:        filter.Role,
		Status:      filter.Status,
		Search:      filter.Search,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	if p.Role != domain.RoleSystemAdmin {
		repoFilter.Roles = rbac.RolesManageableBy(p.Role)
	}
	return s.accounts.List(ctx, repoFilter)
}

// Get fetches one account inside the caller's scope.
func (s *AccountService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Account, error) {
	account, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	decision := rbac.Authorize(p, adminRoles, accountResource(account))
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return account, nil
}

// Create registers a new account strictly below the caller's own level.
func (s *AccountService) Create(ctx context.Context, p domain.Principal, input AccountCreateInput) (*domain.Account, error) {
	decision := rbac.Authorize(p, adminRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if !input.Role.Valid() || input.Role == domain.RoleContractor {
		return nil, apperrors.NewValidationError("invalid target role", map[string]any{"role": string(input.Role)})
	}
	if !rbac.CanManage(p.Role, input.Role) {
		return nil, apperrors.NewDenial(apperrors.CodeRoleNotAllowed,
			"cannot create an account at or above own level", map[string]any{"role": string(input.Role)})
	}

	companyCode := p.CompanyCode
	if p.Role == domain.RoleSystemAdmin && input.CompanyCode != "" {
		companyCode = input.CompanyCode
	}
	officeCode := input.OfficeCode
	if officeCode == "" {
		officeCode = p.OfficeCode
	}

	password := input.Password
	if password == "" {
		password = uuid.NewString()[:12]
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	account := &domain.Account{
		ID:           input.ID,
		Name:         input.Name,
		Role:         input.Role,
		CompanyCode:  companyCode,
		OfficeCode:   officeCode,
		PasswordHash: hash,
		Status:       domain.RecordStatusActive,
		IsFirstLogin: true,
	}
	if company, err := s.companies.GetByCode(ctx, companyCode); err == nil {
		account.CompanyName = company.Name
	}
	if office, err := s.offices.GetByCode(ctx, officeCode); err == nil {
		account.OfficeName = office.Name
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionAccountCreate, account, map[string]any{
		"name": account.Name,
		"role": string(account.Role),
	})
	return account, nil
}

// Update modifies an account inside the caller's scope.
func (s *AccountService) Update(ctx context.Context, p domain.Principal, id string, input AccountUpdateInput) (*domain.Account, error) {
	account, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	decision := rbac.Authorize(p, adminRoles, accountResource(account))
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Role != nil {
		if !input.Role.Valid() || *input.Role == domain.RoleContractor {
			return nil, apperrors.NewValidationError("invalid target role", map[string]any{"role": string(*input.Role)})
		}
		if !rbac.CanManage(p.Role, *input.Role) {
			return nil, apperrors.NewDenial(apperrors.CodeRoleNotAllowed,
				"cannot assign a role at or above own level", map[string]any{"role": string(*input.Role)})
		}
		account.Role = *input.Role
	}
	if input.OfficeCode != nil {
		account.OfficeCode = *input.OfficeCode
		account.OfficeName = ""
		if office, err := s.offices.GetByCode(ctx, *input.OfficeCode); err == nil {
			account.OfficeName = office.Name
		}
	}
	if input.Status != nil {
		account.Status = *input.Status
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		account.PasswordHash = hash
		account.IsFirstLogin = true
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionAccountUpdate, account, map[string]any{"name": account.Name})
	return account, nil
}

// Delete logically deactivates an account. A principal may never deactivate
// itself.
func (s *AccountService) Delete(ctx context.Context, p domain.Principal, id string) error {
	account, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	decision := rbac.AuthorizeDelete(p, adminRoles, *accountResource(account))
	if err := decision.Err(); err != nil {
		return err
	}
	if err := s.accounts.Deactivate(ctx, account.ID); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionAccountDelete, account, map[string]any{
		"name": account.Name,
		"role": string(account.Role),
	})
	return nil
}

func (s *AccountService) fetch(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", map[string]any{"account_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return account, nil
}

func accountResource(account *domain.Account) *rbac.Resource {
	return &rbac.Resource{
		Type:        rbac.ResourceAccount,
		ID:          account.ID,
		CompanyCode: account.CompanyCode,
		OfficeCode:  account.OfficeCode,
	}
}

func (s *AccountService) publish(ctx context.Context, p domain.Principal, action events.Action, account *domain.Account, details map[string]any) {
	if s.dispatcher == nil {
		return
	}
	targetID := account.ID
	officeCode := account.OfficeCode
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Action:      action,
		CompanyCode: account.CompanyCode,
		OfficeCode:  &officeCode,
		Actor:       events.ActorFromPrincipal(p),
		TargetType:  "account",
		TargetID:    &targetID,
		Details:     details,
		Timestamp:   time.Now(),
	})
}
