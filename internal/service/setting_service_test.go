package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetouch-fm/facility-service/internal/domain"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

type fakeSettingRepo struct {
	settings map[string]*domain.Setting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{settings: map[string]*domain.Setting{}}
}

func (f *fakeSettingRepo) List(_ context.Context) ([]domain.Setting, error) {
	var result []domain.Setting
	for _, setting := range f.settings {
		result = append(result, *setting)
	}
	return result, nil
}

func (f *fakeSettingRepo) Get(_ context.Context, key string) (*domain.Setting, error) {
	setting, ok := f.settings[key]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *setting
	return &clone, nil
}

func (f *fakeSettingRepo) Upsert(_ context.Context, setting *domain.Setting) error {
	clone := *setting
	f.settings[setting.Key] = &clone
	return nil
}

func settingCompanyAdmin() domain.Principal {
	return domain.Principal{ID: "ca1", Role: domain.RoleCompanyAdmin, CompanyCode: "C001"}
}

func TestSettingUpdateAndReadBack(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := NewSettingService(repo, nil)

	_, err := svc.Update(context.Background(), settingCompanyAdmin(), "reportRetentionDays", 90)
	require.NoError(t, err)

	setting, err := svc.Get(context.Background(), settingCompanyAdmin(), "reportRetentionDays")
	require.NoError(t, err)
	assert.Equal(t, 90, setting.Value)
	assert.Equal(t, "ca1", repo.settings["reportRetentionDays"].UpdatedBy)
}

func TestSettingUpdateDeniedForStaff(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := NewSettingService(repo, nil)

	staff := domain.Principal{ID: "st1", Role: domain.RoleStaff, CompanyCode: "C001", OfficeCode: "O001"}
	_, err := svc.Update(context.Background(), staff, "reportRetentionDays", 30)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeRoleNotAllowed, domainErr.Code)
	assert.Empty(t, repo.settings)
}

func TestMaintenanceKeysWritableOnlyBySystemAdmin(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := NewSettingService(repo, nil)

	_, err := svc.Update(context.Background(), settingCompanyAdmin(), domain.SettingMaintenanceMode, true)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeRoleNotAllowed, domainErr.Code)

	sysAdmin := domain.Principal{ID: "sys", Role: domain.RoleSystemAdmin}
	_, err = svc.Update(context.Background(), sysAdmin, domain.SettingMaintenanceMode, true)
	require.NoError(t, err)
	assert.Equal(t, true, repo.settings[domain.SettingMaintenanceMode].Value)
}

func TestMaintenanceKeysReadableByAnyRole(t *testing.T) {
	repo := newFakeSettingRepo()
	repo.settings[domain.SettingMaintenanceMessage] = &domain.Setting{
		Key:   domain.SettingMaintenanceMessage,
		Value: "back at noon",
	}
	svc := NewSettingService(repo, nil)

	staff := domain.Principal{ID: "st1", Role: domain.RoleStaff, CompanyCode: "C001", OfficeCode: "O001"}
	setting, err := svc.Get(context.Background(), staff, domain.SettingMaintenanceMessage)
	require.NoError(t, err)
	assert.Equal(t, "back at noon", setting.Value)
}

func TestPrivateSettingReadRequiresAdmin(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := NewSettingService(repo, nil)

	staff := domain.Principal{ID: "st1", Role: domain.RoleStaff, CompanyCode: "C001", OfficeCode: "O001"}
	_, err := svc.Get(context.Background(), staff, "reportRetentionDays")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeRoleNotAllowed, domainErr.Code)
}

func TestUnknownSettingResolvesToNilValue(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := NewSettingService(repo, nil)

	setting, err := svc.Get(context.Background(), settingCompanyAdmin(), "neverWritten")
	require.NoError(t, err)
	assert.Equal(t, "neverWritten", setting.Key)
	assert.Nil(t, setting.Value)
}
