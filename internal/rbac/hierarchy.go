package rbac

import (
	"github.com/onetouch-fm/facility-service/internal/domain"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// roleLevels fixes the privilege ordering for the company-hierarchy roles.
// Contractor is deliberately absent: it is scoped by partner identity, not by
// position in the hierarchy.
var roleLevels = map[domain.Role]int{
	domain.RoleStaff:        1,
	domain.RoleOfficeAdmin:  2,
	domain.RoleCompanyAdmin: 3,
	domain.RoleSystemAdmin:  4,
}

// hierarchyRoles in ascending privilege order.
var hierarchyRoles = []domain.Role{
	domain.RoleStaff,
	domain.RoleOfficeAdmin,
	domain.RoleCompanyAdmin,
	domain.RoleSystemAdmin,
}

// LevelOf returns the fixed privilege level for a company-hierarchy role.
// Contractor and unknown roles have no place in the ordering.
func LevelOf(role domain.Role) (int, error) {
	level, ok := roleLevels[role]
	if !ok {
		return 0, apperrors.NewEngineValidation(apperrors.CodeInvalidRoleForHierarchy,
			"role has no hierarchy level", map[string]any{"role": string(role)})
	}
	return level, nil
}

// CanManage reports whether an actor may create or modify an account of the
// target role. system_admin manages everyone; otherwise the actor must sit
// strictly above the target, and contractor can neither manage nor be managed
// through this path. Equal levels are always denied, which blocks privilege
// escalation via account creation.
func CanManage(actor, target domain.Role) bool {
	if actor == domain.RoleSystemAdmin {
		return true
	}
	actorLevel, err := LevelOf(actor)
	if err != nil {
		return false
	}
	targetLevel, err := LevelOf(target)
	if err != nil {
		return false
	}
	return actorLevel > targetLevel
}

// RolesManageableBy returns the hierarchy roles visible to the actor in
// listings: every role at or below the actor's own level. Contractor actors
// see nothing through this path.
func RolesManageableBy(actor domain.Role) []domain.Role {
	actorLevel, err := LevelOf(actor)
	if err != nil {
		return nil
	}
	visible := make([]domain.Role, 0, len(hierarchyRoles))
	for _, role := range hierarchyRoles {
		if roleLevels[role] <= actorLevel {
			visible = append(visible, role)
		}
	}
	return visible
}
