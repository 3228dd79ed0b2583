package domain

type Role string

const (
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// Actor is the verified caller of an operation.
type Actor struct {
	ID   int64
	Role Role
}
