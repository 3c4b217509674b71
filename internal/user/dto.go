// AngelaMos | 2026
// dto.go

package user

import (
	"strings"
	"time"
)

type CreateUserRequest struct {
	FirstName string    `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string    `json:"last_name"  validate:"required,min=1,max=100"`
	Email     string    `json:"email"      validate:"required,email,max=255,orgemail"`
	Username  string    `json:"username"   validate:"required,max=64,dirusername"`
	Password  string    `json:"password"   validate:"required,min=8,max=128"`
	Address   string    `json:"address"    validate:"required,max=255"`
	Phone     string    `json:"phone"      validate:"required,natphone"`
	BirthDate time.Time `json:"birth_date" validate:"required,adult"`
}

// UpdateUserRequest overwrites every editable field. Password is the
// one exception: when empty the stored hash is left untouched.
type UpdateUserRequest struct {
	FirstName string    `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string    `json:"last_name"  validate:"required,min=1,max=100"`
	Email     string    `json:"email"      validate:"required,email,max=255,orgemail"`
	Username  string    `json:"username"   validate:"required,max=64,dirusername"`
	Password  string    `json:"password"   validate:"omitempty,min=8,max=128"`
	Address   string    `json:"address"    validate:"required,max=255"`
	Phone     string    `json:"phone"      validate:"required,natphone"`
	BirthDate time.Time `json:"birth_date" validate:"required,adult"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// UserResponse is the outward view: the password hash is omitted, the
// name is the concatenated first and last names, an unset active flag
// reads as true, and the date-only CreatedAt serializes as a midnight
// timestamp.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Active    bool      `json:"active"`
	Role      int       `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type ListUsersParams struct {
	FirstName  string
	LastName   string
	Username   string
	Email      string
	Active     *bool
	SortBy     string
	Descending bool
	Page       int
	PageSize   int
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      strings.TrimSpace(u.FirstName + " " + u.LastName),
		Email:     u.Email,
		Username:  u.Username,
		Address:   u.Address,
		Phone:     u.Phone,
		Active:    u.IsActive(),
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func ToUserResponseList(users []*User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(u))
	}
	return responses
}
