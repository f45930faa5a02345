package models

// Operator role constants (from the JWT "role" claim)
const (
	RoleOperator = "operator"
	RoleAdmin    = "admin"
)

// Actor identifies the operator behind a request. Admins pass every
// party check; everyone else only acts in their own capacity.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
