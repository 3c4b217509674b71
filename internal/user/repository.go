// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/user-directory/internal/core"
	"github.com/carterperez-dev/user-directory/internal/store"
)

var (
	ErrEmailExists    = errors.New("email already exists")
	ErrUsernameExists = errors.New("username already exists")
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, id string, mutate func(*User)) (*User, error)
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, params ListUsersParams) ([]*User, int, error)
	Counts(ctx context.Context) (total, active int, err error)
}

type repository struct {
	records *store.Store[User]
}

func NewRepository(records *store.Store[User]) Repository {
	return &repository{records: records}
}

// Create inserts the user unless another record already holds its
// email or username. Uniqueness spans active and inactive records
// alike, and the check-then-insert runs atomically inside the store.
func (r *repository) Create(ctx context.Context, user *User) error {
	conflicting, ok := r.records.AppendUnique(user, func(existing *User) bool {
		return strings.EqualFold(existing.Email, user.Email) ||
			strings.EqualFold(existing.Username, user.Username)
	})
	if !ok {
		if strings.EqualFold(conflicting.Email, user.Email) {
			return fmt.Errorf("create user: %w", ErrEmailExists)
		}
		return fmt.Errorf("create user: %w", ErrUsernameExists)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	user, ok := r.records.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}

	return user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	user, ok := r.records.FindFirst(func(u *User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if !ok {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}

	return user, nil
}

func (r *repository) GetByUsername(
	ctx context.Context,
	username string,
) (*User, error) {
	user, ok := r.records.FindFirst(func(u *User) bool {
		return strings.EqualFold(u.Username, username)
	})
	if !ok {
		return nil, fmt.Errorf("get user by username: %w", core.ErrNotFound)
	}

	return user, nil
}

func (r *repository) Update(
	ctx context.Context,
	id string,
	mutate func(*User),
) (*User, error) {
	if !r.records.MutateInPlace(id, mutate) {
		return nil, fmt.Errorf("update user: %w", core.ErrNotFound)
	}

	user, ok := r.records.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("update user: %w", core.ErrNotFound)
	}

	return user, nil
}

// SoftDelete flips the active flag to false and nothing else. The
// record stays in the store and remains findable by id, email and
// username. Deleting an already-inactive record succeeds.
func (r *repository) SoftDelete(ctx context.Context, id string) error {
	inactive := false
	if !r.records.MutateInPlace(id, func(u *User) { u.Active = &inactive }) {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]*User, int, error) {
	page, total, err := RunQuery(r.records.All(), params)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return page, total, nil
}

func (r *repository) Counts(
	ctx context.Context,
) (total, active int, err error) {
	for _, u := range r.records.All() {
		total++
		if u.IsActive() {
			active++
		}
	}

	return total, active, nil
}
