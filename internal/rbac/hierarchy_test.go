package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetouch-fm/facility-service/internal/domain"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

func TestLevelOf(t *testing.T) {
	cases := []struct {
		role  domain.Role
		level int
	}{
		{domain.RoleStaff, 1},
		{domain.RoleOfficeAdmin, 2},
		{domain.RoleCompanyAdmin, 3},
		{domain.RoleSystemAdmin, 4},
	}
	for _, tc := range cases {
		level, err := LevelOf(tc.role)
		require.NoError(t, err)
		assert.Equal(t, tc.level, level, "role %s", tc.role)
	}
}

func TestLevelOfRejectsContractorAndUnknown(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleContractor, domain.Role("manager"), domain.Role("")} {
		_, err := LevelOf(role)
		require.Error(t, err, "role %s", role)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, apperrors.CodeInvalidRoleForHierarchy, domainErr.Code)
	}
}

func TestCanManageStrictOrdering(t *testing.T) {
	// Actors never manage their own level or above.
	assert.False(t, CanManage(domain.RoleStaff, domain.RoleStaff))
	assert.False(t, CanManage(domain.RoleOfficeAdmin, domain.RoleOfficeAdmin))
	assert.False(t, CanManage(domain.RoleOfficeAdmin, domain.RoleCompanyAdmin))
	assert.False(t, CanManage(domain.RoleCompanyAdmin, domain.RoleSystemAdmin))

	assert.True(t, CanManage(domain.RoleOfficeAdmin, domain.RoleStaff))
	assert.True(t, CanManage(domain.RoleCompanyAdmin, domain.RoleOfficeAdmin))
	assert.True(t, CanManage(domain.RoleCompanyAdmin, domain.RoleStaff))
}

func TestCanManageSystemAdminManagesEveryone(t *testing.T) {
	for _, target := range []domain.Role{
		domain.RoleStaff,
		domain.RoleOfficeAdmin,
		domain.RoleCompanyAdmin,
		domain.RoleSystemAdmin,
	} {
		assert.True(t, CanManage(domain.RoleSystemAdmin, target), "target %s", target)
	}
}

func TestCanManageContractorExcludedBothWays(t *testing.T) {
	assert.False(t, CanManage(domain.RoleContractor, domain.RoleStaff))
	assert.False(t, CanManage(domain.RoleCompanyAdmin, domain.RoleContractor))
	assert.False(t, CanManage(domain.RoleContractor, domain.RoleContractor))
}

func TestRolesManageableBy(t *testing.T) {
	assert.Equal(t, []domain.Role{domain.RoleStaff}, RolesManageableBy(domain.RoleStaff))
	assert.Equal(t,
		[]domain.Role{domain.RoleStaff, domain.RoleOfficeAdmin},
		RolesManageableBy(domain.RoleOfficeAdmin))
	assert.Equal(t,
		[]domain.Role{domain.RoleStaff, domain.RoleOfficeAdmin, domain.RoleCompanyAdmin},
		RolesManageableBy(domain.RoleCompanyAdmin))
	assert.Len(t, RolesManageableBy(domain.RoleSystemAdmin), 4)
	assert.Nil(t, RolesManageableBy(domain.RoleContractor))
}
