package rbac

import (
	"github.com/onetouch-fm/facility-service/internal/domain"
)

// Scope is the filter boundary computed for one principal. Nil fields mean
// unrestricted. Callers AND non-nil fields into their queries; the engine
// never touches storage itself.
type Scope struct {
	CompanyFilter *string
	OfficeFilter  *string
	PartnerFilter *string // set only for contractor principals
}

// Resource carries the ownership fields of a target record, enough for a
// boundary decision without knowing the record type.
type Resource struct {
	Type              string
	ID                string
	CompanyCode       string
	OfficeCode        string
	AssignedPartnerID *string
}

// DenialReason identifies why access was refused.
type DenialReason string

const (
	DenyRoleNotAllowed      DenialReason = "role_not_allowed"
	DenyWrongCompany        DenialReason = "wrong_company"
	DenyWrongOffice         DenialReason = "wrong_office"
	DenyNotAssignedPartner  DenialReason = "not_assigned_partner"
	DenySelfDeleteForbidden DenialReason = "self_delete_forbidden"
)

// Decision is the outcome of an authorization check. When allowed, Scope
// carries the filters the caller must apply to its own query.
type Decision struct {
	Allowed bool
	Scope   Scope
	Reason  DenialReason
}

// Allow builds a permitted decision carrying the resolved scope.
func Allow(scope Scope) Decision {
	return Decision{Allowed: true, Scope: scope}
}

// Deny builds a refused decision.
func Deny(reason DenialReason) Decision {
	return Decision{Reason: reason}
}

// ResolveScope computes the query boundary for a principal.
//
//	system_admin  -> unrestricted
//	company_admin -> own company, all offices
//	office_admin, staff -> own company and office
//	contractor    -> partner filter only; company/office do not apply
func ResolveScope(p domain.Principal) Scope {
	switch p.Role {
	case domain.RoleSystemAdmin:
		return Scope{}
	case domain.RoleCompanyAdmin:
		company := p.CompanyCode
		return Scope{CompanyFilter: &company}
	case domain.RoleContractor:
		return Scope{PartnerFilter: p.PartnerID}
	default:
		company := p.CompanyCode
		office := p.OfficeCode
		return Scope{CompanyFilter: &company, OfficeFilter: &office}
	}
}

// AuthorizeResourceAccess validates a single-resource operation against the
// principal's boundary. Contractor principals are checked against the
// resource's assigned partner; everyone else against company and office
// membership.
func AuthorizeResourceAccess(p domain.Principal, res Resource) Decision {
	scope := ResolveScope(p)

	if p.IsContractor() {
		if p.PartnerID == nil || res.AssignedPartnerID == nil || *res.AssignedPartnerID != *p.PartnerID {
			return Deny(DenyNotAssignedPartner)
		}
		return Allow(scope)
	}

	if scope.CompanyFilter != nil && res.CompanyCode != *scope.CompanyFilter {
		return Deny(DenyWrongCompany)
	}
	// A resource with no office of its own is company-scoped and passes the
	// office check.
	if scope.OfficeFilter != nil && res.OfficeCode != "" && res.OfficeCode != *scope.OfficeFilter {
		return Deny(DenyWrongOffice)
	}
	return Allow(scope)
}
