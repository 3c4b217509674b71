// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// User is the canonical directory record. CreatedAt holds a pure date
// (midnight UTC) fixed at creation. Active is tri-state: nil is
// treated as active everywhere the flag is read.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Username     string
	PasswordHash string
	Address      string
	Phone        string
	BirthDate    time.Time
	Active       *bool
	Role         int
	CreatedAt    time.Time
}

// IsActive resolves the tri-state flag; an unset flag defaults to true.
func (u *User) IsActive() bool {
	return u.Active == nil || *u.Active
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	RoleOrdinary = 0
	RoleAdmin    = 1
)
