// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/user-directory/internal/config"
	"github.com/carterperez-dev/user-directory/internal/core"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	repo            Repository
	defaultPageSize int
}

func NewService(repo Repository, cfg config.DirectoryConfig) *Service {
	return &Service{
		repo:            repo,
		defaultPageSize: cfg.DefaultPageSize,
	}
}

// Register maps a validated creation request onto a fresh record:
// generated id, hashed password, role 0, active true, creation date
// fixed to today.
func (s *Service) Register(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	active := true
	user := &User{
		ID:           uuid.New().String(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        strings.ToLower(req.Email),
		Username:     req.Username,
		PasswordHash: passwordHash,
		Address:      req.Address,
		Phone:        req.Phone,
		BirthDate:    req.BirthDate,
		Active:       &active,
		Role:         RoleOrdinary,
		CreatedAt:    dateOnly(time.Now()),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies email and password. A wrong password and an
// inactive account produce the same ErrInvalidCredentials so callers
// cannot tell which check failed, and unknown emails still burn a
// full hash verification.
func (s *Service) Authenticate(
	ctx context.Context,
	email, password string,
) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.VerifyPasswordTimingSafe(password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid := core.VerifyPasswordTimingSafe(password, &user.PasswordHash)
	if !valid || !user.IsActive() {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// Update overwrites the editable fields in place. Identifier, role,
// active flag and creation date are never touched, and the password
// hash is replaced only when a new plaintext was supplied.
func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	var passwordHash string
	if req.Password != "" {
		hash, err := core.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		passwordHash = hash
	}

	return s.repo.Update(ctx, id, func(u *User) {
		u.FirstName = req.FirstName
		u.LastName = req.LastName
		u.Email = strings.ToLower(req.Email)
		u.Username = req.Username
		u.Address = req.Address
		u.Phone = req.Phone
		u.BirthDate = req.BirthDate
		if passwordHash != "" {
			u.PasswordHash = passwordHash
		}
	})
}

func (s *Service) SoftDelete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListUsersParams,
) ([]*User, int, error) {
	if params.PageSize == 0 {
		params.PageSize = s.defaultPageSize
	}

	return s.repo.List(ctx, params)
}

func (s *Service) DefaultPageSize() int {
	return s.defaultPageSize
}

func (s *Service) Counts(
	ctx context.Context,
) (total, active int, err error) {
	return s.repo.Counts(ctx)
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
