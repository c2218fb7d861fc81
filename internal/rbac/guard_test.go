package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetouch-fm/facility-service/internal/domain"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

var adminOnly = []domain.Role{domain.RoleOfficeAdmin, domain.RoleCompanyAdmin, domain.RoleSystemAdmin}

func TestAuthorizeRoleGate(t *testing.T) {
	staff := domain.Principal{ID: "s1", Role: domain.RoleStaff, CompanyCode: "C001", OfficeCode: "O001"}

	denied := Authorize(staff, adminOnly, nil)
	assert.False(t, denied.Allowed)
	assert.Equal(t, DenyRoleNotAllowed, denied.Reason)

	allowed := Authorize(staff, nil, nil)
	assert.True(t, allowed.Allowed, "empty role list admits every role")
}

func TestAuthorizeCarriesScope(t *testing.T) {
	admin := domain.Principal{ID: "oa1", Role: domain.RoleOfficeAdmin, CompanyCode: "C001", OfficeCode: "O001"}

	decision := Authorize(admin, adminOnly, nil)
	require.True(t, decision.Allowed)
	require.NotNil(t, decision.Scope.CompanyFilter)
	require.NotNil(t, decision.Scope.OfficeFilter)
	assert.Equal(t, "C001", *decision.Scope.CompanyFilter)
	assert.Equal(t, "O001", *decision.Scope.OfficeFilter)
}

func TestAuthorizeRoleCheckRunsBeforeBoundaryCheck(t *testing.T) {
	staff := domain.Principal{ID: "s1", Role: domain.RoleStaff, CompanyCode: "C001", OfficeCode: "O001"}
	res := &Resource{Type: "account", ID: "a1", CompanyCode: "C002"}

	decision := Authorize(staff, adminOnly, res)
	assert.Equal(t, DenyRoleNotAllowed, decision.Reason, "role denial wins over wrong company")
}

func TestAuthorizeDeleteSelfTarget(t *testing.T) {
	admin := domain.Principal{ID: "oa1", Role: domain.RoleOfficeAdmin, CompanyCode: "C001", OfficeCode: "O001"}

	decision := AuthorizeDelete(admin, adminOnly, Resource{
		Type: ResourceAccount, ID: "oa1", CompanyCode: "C001", OfficeCode: "O001",
	})
	assert.False(t, decision.Allowed)
	assert.Equal(t, DenySelfDeleteForbidden, decision.Reason)

	other := AuthorizeDelete(admin, adminOnly, Resource{
		Type: ResourceAccount, ID: "s1", CompanyCode: "C001", OfficeCode: "O001",
	})
	assert.True(t, other.Allowed)
}

func TestAuthorizeDeleteSelfRuleOnlyForAccounts(t *testing.T) {
	admin := domain.Principal{ID: "oa1", Role: domain.RoleOfficeAdmin, CompanyCode: "C001", OfficeCode: "O001"}

	decision := AuthorizeDelete(admin, adminOnly, Resource{
		Type: "item", ID: "oa1", CompanyCode: "C001", OfficeCode: "O001",
	})
	assert.True(t, decision.Allowed, "matching id on a non-account resource is fine")
}

func TestDecisionErrMapsReasonsToCodes(t *testing.T) {
	cases := []struct {
		reason DenialReason
		code   string
	}{
		{DenyRoleNotAllowed, apperrors.CodeRoleNotAllowed},
		{DenyWrongCompany, apperrors.CodeWrongCompany},
		{DenyWrongOffice, apperrors.CodeWrongOffice},
		{DenyNotAssignedPartner, apperrors.CodeNotAssignedPartner},
		{DenySelfDeleteForbidden, apperrors.CodeSelfDeleteForbidden},
	}
	for _, tc := range cases {
		err := Deny(tc.reason).Err()
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, tc.code, domainErr.Code)
		assert.Equal(t, 403, domainErr.HTTPStatus)
	}
}

func TestDecisionErrNilWhenAllowed(t *testing.T) {
	assert.NoError(t, Allow(Scope{}).Err())
}
