// Package entity contains the core business objects of the project.
package entity

// Role represents the marketplace role of an account.
type Role string

const (
	// RoleFarmer indicates an account that sells produce.
	RoleFarmer Role = "farmer"
	// RoleBuyer indicates an account that buys produce.
	RoleBuyer Role = "buyer"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}
