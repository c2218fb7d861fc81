package domain

// Role enumerates account roles. The four company-hierarchy roles form a
// strict privilege ordering; contractor sits on a separate scoping axis keyed
// by partner identity rather than company/office membership.
type Role string

const (
	RoleContractor   Role = "contractor"
	RoleStaff        Role = "staff"
	RoleOfficeAdmin  Role = "office_admin"
	RoleCompanyAdmin Role = "company_admin"
	RoleSystemAdmin  Role = "system_admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleContractor, RoleStaff, RoleOfficeAdmin, RoleCompanyAdmin, RoleSystemAdmin:
		return true
	}
	return false
}
