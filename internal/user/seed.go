// AngelaMos | 2026
// seed.go

package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/user-directory/internal/core"
)

type seedUser struct {
	firstName string
	lastName  string
	email     string
	username  string
	password  string
	address   string
	phone     string
	birthDate time.Time
	role      int
}

var seedUsers = []seedUser{
	{
		firstName: "Admin",
		lastName:  "IF",
		email:     "admin@if.cl",
		username:  "admin_if",
		password:  "admin#2026",
		address:   "Av. Apoquindo 4501, Las Condes",
		phone:     "+56911111111",
		birthDate: time.Date(1985, time.March, 14, 0, 0, 0, 0, time.UTC),
		role:      RoleAdmin,
	},
	{
		firstName: "Ignacio",
		lastName:  "Avendano",
		email:     "iavendano@if.cl",
		username:  "iavendano",
		password:  "ignacio#2026",
		address:   "Av. Providencia 1208, Providencia",
		phone:     "+56922222222",
		birthDate: time.Date(1992, time.July, 2, 0, 0, 0, 0, time.UTC),
		role:      RoleOrdinary,
	},
	{
		firstName: "David",
		lastName:  "Araya",
		email:     "daraya@if.cl",
		username:  "daraya",
		password:  "david#2026",
		address:   "Av. Italia 850, Nunoa",
		phone:     "+56933333333",
		birthDate: time.Date(1994, time.November, 21, 0, 0, 0, 0, time.UTC),
		role:      RoleOrdinary,
	},
}

// Seed loads the three bootstrap fixtures into an empty repository.
// Passwords are hashed at startup so the records look exactly like
// registered ones.
func Seed(ctx context.Context, repo Repository) error {
	for _, seed := range seedUsers {
		passwordHash, err := core.HashPassword(seed.password)
		if err != nil {
			return fmt.Errorf("hash seed password for %s: %w", seed.username, err)
		}

		active := true
		user := &User{
			ID:           uuid.New().String(),
			FirstName:    seed.firstName,
			LastName:     seed.lastName,
			Email:        seed.email,
			Username:     seed.username,
			PasswordHash: passwordHash,
			Address:      seed.address,
			Phone:        seed.phone,
			BirthDate:    seed.birthDate,
			Active:       &active,
			Role:         seed.role,
			CreatedAt:    dateOnly(time.Now()),
		}

		if err := repo.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", seed.username, err)
		}
	}

	return nil
}
