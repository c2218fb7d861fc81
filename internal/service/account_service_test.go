package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/onetouch-fm/facility-service/internal/config"
	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/repository"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

type fakeAccountRepo struct {
	accounts    map[string]*domain.Account
	lastFilter  repository.AccountFilter
	deactivated []string
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*domain.Account{}}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	clone := *account
	f.accounts[account.ID] = &clone
	return nil
}

func (f *fakeAccountRepo) Update(_ context.Context, account *domain.Account) error {
	clone := *account
	f.accounts[account.ID] = &clone
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *account
	return &clone, nil
}

func (f *fakeAccountRepo) List(_ context.Context, filter repository.AccountFilter) ([]domain.Account, error) {
	f.lastFilter = filter
	return nil, nil
}

func (f *fakeAccountRepo) Deactivate(_ context.Context, id string) error {
	f.deactivated = append(f.deactivated, id)
	return nil
}

func (f *fakeAccountRepo) TouchLogin(_ context.Context, _ string) error { return nil }

type fakeCompanyRepo struct{}

func (fakeCompanyRepo) Create(_ context.Context, _ *domain.Company) error { return nil }
func (fakeCompanyRepo) Update(_ context.Context, _ *domain.Company) error { return nil }

func (fakeCompanyRepo) GetByCode(_ context.Context, code string) (*domain.Company, error) {
	return &domain.Company{Code: code, Name: "Company " + code}, nil
}

func (fakeCompanyRepo) List(_ context.Context, _ repository.CompanyFilter) ([]domain.Company, error) {
	return nil, nil
}

type fakeOfficeRepo struct{}

func (fakeOfficeRepo) Create(_ context.Context, _ *domain.Office) error { return nil }
func (fakeOfficeRepo) Update(_ context.Context, _ *domain.Office) error { return nil }

func (fakeOfficeRepo) GetByCode(_ context.Context, code string) (*domain.Office, error) {
	return &domain.Office{Code: code, Name: "Office " + code}, nil
}

func (fakeOfficeRepo) List(_ context.Context, _ repository.OfficeFilter) ([]domain.Office, error) {
	return nil, nil
}

func (fakeOfficeRepo) Deactivate(_ context.Context, _ string) error { return nil }

func newAccountService(accounts *fakeAccountRepo) *AccountService {
	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	return NewAccountService(cfg, AccountDependencies{
		AccountRepo: accounts,
		CompanyRepo: fakeCompanyRepo{},
		OfficeRepo:  fakeOfficeRepo{},
	})
}

func companyAdmin() domain.Principal {
	return domain.Principal{ID: "acc-ca", Name: "Company Admin", Role: domain.RoleCompanyAdmin, CompanyCode: "C001", OfficeCode: "O001"}
}

func TestAccountCreateBelowOwnLevel(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newAccountService(repo)

	account, err := svc.Create(context.Background(), companyAdmin(), AccountCreateInput{
		ID:       "acc-new",
		Name:     "New Staff",
		Role:     domain.RoleStaff,
		Password: "initial-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, account.Role)
	assert.Equal(t, "C001", account.CompanyCode, "company inherited from the creator")
	assert.Equal(t, "O001", account.OfficeCode)
	assert.Equal(t, "Company C001", account.CompanyName)
	assert.True(t, account.IsFirstLogin)
	assert.NotEmpty(t, account.PasswordHash)
	assert.NotEqual(t, "initial-pass", account.PasswordHash)
}

func TestAccountCreateAtOrAboveOwnLevelDenied(t *testing.T) {
	svc := newAccountService(newFakeAccountRepo())

	for _, role := range []domain.Role{domain.RoleCompanyAdmin, domain.RoleSystemAdmin} {
		_, err := svc.Create(context.Background(), companyAdmin(), AccountCreateInput{
			ID: "acc-x", Name: "Peer", Role: role,
		})
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, apperrors.CodeRoleNotAllowed, domainErr.Code)
	}
}

func TestAccountCreateRejectsContractorRole(t *testing.T) {
	svc := newAccountService(newFakeAccountRepo())

	_, err := svc.Create(context.Background(), companyAdmin(), AccountCreateInput{
		ID: "acc-x", Name: "X", Role: domain.RoleContractor,
	})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestAccountCreateStaffDenied(t *testing.T) {
	svc := newAccountService(newFakeAccountRepo())
	staff := domain.Principal{ID: "acc-s", Role: domain.RoleStaff, CompanyCode: "C001", OfficeCode: "O001"}

	_, err := svc.Create(context.Background(), staff, AccountCreateInput{ID: "acc-x", Name: "X", Role: domain.RoleStaff})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeRoleNotAllowed, domainErr.Code)
}

func TestAccountCreateSystemAdminMayPickCompany(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newAccountService(repo)
	sysAdmin := domain.Principal{ID: "acc-sys", Role: domain.RoleSystemAdmin}

	account, err := svc.Create(context.Background(), sysAdmin, AccountCreateInput{
		ID: "acc-new", Name: "Remote Admin", Role: domain.RoleCompanyAdmin,
		CompanyCode: "C042", OfficeCode: "O042",
	})
	require.NoError(t, err)
	assert.Equal(t, "C042", account.CompanyCode)
	assert.Equal(t, "O042", account.OfficeCode)
}

func TestAccountListScopesQueryAndVisibleRoles(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newAccountService(repo)

	_, err := svc.List(context.Background(), companyAdmin(), AccountListFilter{})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.CompanyCode)
	assert.Equal(t, "C001", *repo.lastFilter.CompanyCode)
	assert.Nil(t, repo.lastFilter.OfficeCode, "company_admin sees the whole company")
	assert.ElementsMatch(t,
		[]domain.Role{domain.RoleStaff, domain.RoleOfficeAdmin, domain.RoleCompanyAdmin},
		repo.lastFilter.Roles,
		"listings show roles at or below the caller's level")
}

func TestAccountListSystemAdminUnrestricted(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newAccountService(repo)
	sysAdmin := domain.Principal{ID: "acc-sys", Role: domain.RoleSystemAdmin}

	_, err := svc.List(context.Background(), sysAdmin, AccountListFilter{})
	require.NoError(t, err)
	assert.Nil(t, repo.lastFilter.CompanyCode)
	assert.Nil(t, repo.lastFilter.Roles)
}

func TestAccountUpdateRoleEscalationDenied(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.accounts["acc-1"] = &domain.Account{
		ID: "acc-1", Name: "Staff One", Role: domain.RoleStaff,
		CompanyCode: "C001", OfficeCode: "O001", Status: domain.RecordStatusActive,
	}
	svc := newAccountService(repo)

	target := domain.RoleSystemAdmin
	_, err := svc.Update(context.Background(), companyAdmin(), "acc-1", AccountUpdateInput{Role: &target})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeRoleNotAllowed, domainErr.Code)
	assert.Equal(t, domain.RoleStaff, repo.accounts["acc-1"].Role, "role unchanged after denial")
}

func TestAccountDeleteSelfDenied(t *testing.T) {
	repo := newFakeAccountRepo()
	admin := companyAdmin()
	repo.accounts[admin.ID] = &domain.Account{
		ID: admin.ID, Name: admin.Name, Role: admin.Role,
		CompanyCode: admin.CompanyCode, OfficeCode: admin.OfficeCode,
		Status: domain.RecordStatusActive,
	}
	svc := newAccountService(repo)

	err := svc.Delete(context.Background(), admin, admin.ID)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeSelfDeleteForbidden, domainErr.Code)
	assert.Empty(t, repo.deactivated)
}

func TestAccountDeleteOtherCompanyDenied(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.accounts["acc-far"] = &domain.Account{
		ID: "acc-far", Role: domain.RoleStaff,
		CompanyCode: "C002", OfficeCode: "O009", Status: domain.RecordStatusActive,
	}
	svc := newAccountService(repo)

	err := svc.Delete(context.Background(), companyAdmin(), "acc-far")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeWrongCompany, domainErr.Code)
}

func TestAccountDeleteDeactivates(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.accounts["acc-1"] = &domain.Account{
		ID: "acc-1", Role: domain.RoleStaff,
		CompanyCode: "C001", OfficeCode: "O001", Status: domain.RecordStatusActive,
	}
	svc := newAccountService(repo)

	require.NoError(t, svc.Delete(context.Background(), companyAdmin(), "acc-1"))
	assert.Equal(t, []string{"acc-1"}, repo.deactivated)
}
