package models

// Role is the closed set of access levels a user record can hold. Roles are
// assigned server-side: registration always writes RoleUser, and promotion is
// the only transition to RoleAdmin.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)
