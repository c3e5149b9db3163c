package domain

// Roles carried in validated token claims.
const (
	RoleCustomer      = "customer"
	RoleAdministrator = "admin"
)

// Actor is the authenticated caller of an operation, built from validated
// token claims. The zero value is an anonymous actor.
type Actor struct {
	UserID string
	Email  string
	Role   string
}

// IsAdministrator reports whether the actor may use store-owner operations.
func (a Actor) IsAdministrator() bool {
	return a.Role == RoleAdministrator
}

// Is reports whether the actor is the user with the given ID.
func (a Actor) Is(userID string) bool {
	return a.UserID != "" && a.UserID == userID
}
