package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestResolveScopeSystemAdminUnrestricted(t *testing.T) {
	scope := ResolveScope(domain.Principal{ID: "sys1", Role: domain.RoleSystemAdmin})
	assert.Nil(t, scope.CompanyFilter)
	assert.Nil(t, scope.OfficeFilter)
	assert.Nil(t, scope.PartnerFilter)
}

func TestResolveScopeCompanyAdmin(t *testing.T) {
	scope := ResolveScope(domain.Principal{
		ID: "ca1", Role: domain.RoleCompanyAdmin, CompanyCode: "C001", OfficeCode: "O001",
	})
	require.NotNil(t, scope.CompanyFilter)
	assert.Equal(t, "C001", *scope.CompanyFilter)
	assert.Nil(t, scope.OfficeFilter, "company admin sees every office")
	assert.Nil(t, scope.PartnerFilter)
}

func TestResolveScopeOfficeBoundRoles(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleStaff, domain.RoleOfficeAdmin} {
		scope := ResolveScope(domain.Principal{
			ID: "u1", Role: role, CompanyCode: "C001", OfficeCode: "O001",
		})
		require.NotNil(t, scope.CompanyFilter, "role %s", role)
		require.NotNil(t, scope.OfficeFilter, "role %s", role)
		assert.Equal(t, "C001", *scope.CompanyFilter)
		assert.Equal(t, "O001", *scope.OfficeFilter)
	}
}

func TestResolveScopeContractor(t *testing.T) {
	scope := ResolveScope(domain.Principal{
		ID: "login1", Role: domain.RoleContractor, PartnerID: strPtr("PTR-1"),
	})
	assert.Nil(t, scope.CompanyFilter)
	assert.Nil(t, scope.OfficeFilter)
	require.NotNil(t, scope.PartnerFilter)
	assert.Equal(t, "PTR-1", *scope.PartnerFilter)
}

func TestAuthorizeResourceAccessCompanyBoundary(t *testing.T) {
	actor := domain.Principal{ID: "ca1", Role: domain.RoleCompanyAdmin, CompanyCode: "C001"}

	allowed := AuthorizeResourceAccess(actor, Resource{Type: "report", ID: "r1", CompanyCode: "C001", OfficeCode: "O009"})
	assert.True(t, allowed.Allowed)

	denied := AuthorizeResourceAccess(actor, Resource{Type: "report", ID: "r2", CompanyCode: "C002", OfficeCode: "O001"})
	assert.False(t, denied.Allowed)
	assert.Equal(t, DenyWrongCompany, denied.Reason)
}

func TestAuthorizeResourceAccessOfficeBoundary(t *testing.T) {
	actor := domain.Principal{ID: "s1", Role: domain.RoleStaff, CompanyCode: "C001", OfficeCode: "O001"}

	allowed := AuthorizeResourceAccess(actor, Resource{Type: "item", ID: "i1", CompanyCode: "C001", OfficeCode: "O001"})
	assert.True(t, allowed.Allowed)

	denied := AuthorizeResourceAccess(actor, Resource{Type: "item", ID: "i2", CompanyCode: "C001", OfficeCode: "O002"})
	assert.False(t, denied.Allowed)
	assert.Equal(t, DenyWrongOffice, denied.Reason)
}

func TestAuthorizeResourceAccessCompanyScopedResourceSkipsOfficeCheck(t *testing.T) {
	actor := domain.Principal{ID: "oa1", Role: domain.RoleOfficeAdmin, CompanyCode: "C001", OfficeCode: "O001"}

	decision := AuthorizeResourceAccess(actor, Resource{Type: "contract", ID: "cn1", CompanyCode: "C001"})
	assert.True(t, decision.Allowed)
}

func TestAuthorizeResourceAccessContractor(t *testing.T) {
	actor := domain.Principal{ID: "login1", Role: domain.RoleContractor, PartnerID: strPtr("PTR-1")}

	assigned := AuthorizeResourceAccess(actor, Resource{
		Type: "report", ID: "r1", CompanyCode: "C001", OfficeCode: "O001", AssignedPartnerID: strPtr("PTR-1"),
	})
	assert.True(t, assigned.Allowed, "company and office do not apply to contractors")

	otherPartner := AuthorizeResourceAccess(actor, Resource{
		Type: "report", ID: "r2", CompanyCode: "C001", AssignedPartnerID: strPtr("PTR-2"),
	})
	assert.False(t, otherPartner.Allowed)
	assert.Equal(t, DenyNotAssignedPartner, otherPartner.Reason)

	unassigned := AuthorizeResourceAccess(actor, Resource{
		Type: "report", ID: "r3", CompanyCode: "C001", AssignedPartnerID: nil,
	})
	assert.False(t, unassigned.Allowed)
	assert.Equal(t, DenyNotAssignedPartner, unassigned.Reason)
}

func TestAuthorizeResourceAccessContractorWithoutPartnerID(t *testing.T) {
	actor := domain.Principal{ID: "login1", Role: domain.RoleContractor}
	decision := AuthorizeResourceAccess(actor, Resource{
		Type: "report", ID: "r1", AssignedPartnerID: strPtr("PTR-1"),
	})
	assert.False(t, decision.Allowed)
	assert.Equal(t, DenyNotAssignedPartner, decision.Reason)
}
