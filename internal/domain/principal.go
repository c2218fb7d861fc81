package domain

// Principal is the authenticated actor for one request. It is built once from
// a verified credential and passed by value; the engine never reads actor
// identity from ambient state.
type Principal struct {
	ID          string
	Name        string
	Role        Role
	CompanyCode string
	OfficeCode  string
	PartnerID   *string // set only for contractor principals
}

// IsContractor reports whether the principal is scoped by partner identity.
func (p Principal) IsContractor() bool {
	return p.Role == RoleContractor
}
