package user

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, manages shifts and employees
	RoleStaff    Role = "staff"    // Reviews requests, views everyone's attendance
	RoleEmployee Role = "employee" // Records own attendance and submits requests
)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleStaff, RoleEmployee:
		return r, nil
	}
	return "", ErrInvalidRole
}

// IsReviewer checks if the role may approve or reject requests
func (r Role) IsReviewer() bool {
	return r == RoleAdmin || r == RoleStaff
}
