package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims accepted by loanflow services. The subject is the
// customer or staff identifier.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// Role constants
const (
	RoleAdmin       = "admin"
	RoleUnderwriter = "underwriter"
	RoleAuditor     = "auditor"
	RoleCustomer    = "customer"
	RoleAPIClient   = "api_client"
)
