package domain

// UserRole represents the role a user holds in the system.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleMechanic   UserRole = "mechanic"
	RoleAccounting UserRole = "accounting"
	RoleCustomer   UserRole = "customer"
)

// User represents an account in the system. Mechanics, admins and
// accounting staff log in; customers book as guests.
type User struct {
	ID       string
	Role     UserRole
	Name     string
	Email    string
	Phone    string
	IsActive bool
	Password string // plain credential check against seeded accounts
}
