package entity

import "time"

// User is the identity attached to every engine operation. It is resolved
// by the authentication layer and immutable for the duration of a request.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	ReportsTo    string    `json:"reports_to,omitempty"` // manager user ID
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsManagerial returns true for roles that carry review authority.
func (u *User) IsManagerial() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
