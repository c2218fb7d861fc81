package rbac

import (
	"github.com/onetouch-fm/facility-service/internal/domain"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// ResourceAccount is the resource type that triggers the self-delete rule.
const ResourceAccount = "account"

// Authorize is the single composition point every listing or mutating
// operation passes through. Step 1 checks role eligibility, step 2 (when a
// resource is given) checks boundary membership, and the returned decision
// carries the resolved scope for the caller's query layer.
func Authorize(p domain.Principal, requiredRoles []domain.Role, res *Resource) Decision {
	if len(requiredRoles) > 0 && !roleAllowed(p.Role, requiredRoles) {
		return Deny(DenyRoleNotAllowed)
	}
	if res != nil {
		return AuthorizeResourceAccess(p, *res)
	}
	return Allow(ResolveScope(p))
}

// AuthorizeDelete applies the deactivation rules: the usual role and boundary
// checks plus the rule that no principal may deactivate its own account.
func AuthorizeDelete(p domain.Principal, requiredRoles []domain.Role, res Resource) Decision {
	if res.Type == ResourceAccount && res.ID == p.ID {
		return Deny(DenySelfDeleteForbidden)
	}
	return Authorize(p, requiredRoles, &res)
}

// Err maps a denied decision onto the structured error taxonomy; nil when
// allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case DenyRoleNotAllowed:
		return apperrors.NewDenial(apperrors.CodeRoleNotAllowed, "role not permitted for this operation", nil)
	case DenyWrongCompany:
		return apperrors.NewDenial(apperrors.CodeWrongCompany, "resource belongs to another company", nil)
	case DenyWrongOffice:
		return apperrors.NewDenial(apperrors.CodeWrongOffice, "resource belongs to another office", nil)
	case DenyNotAssignedPartner:
		return apperrors.NewDenial(apperrors.CodeNotAssignedPartner, "resource is not assigned to this partner", nil)
	case DenySelfDeleteForbidden:
		return apperrors.NewDenial(apperrors.CodeSelfDeleteForbidden, "own account cannot be deactivated", nil)
	default:
		return apperrors.NewForbidden("access denied")
	}
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	for _, candidate := range allowed {
		if role == candidate {
			return true
		}
	}
	return false
}
