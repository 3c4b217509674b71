// AngelaMos | 2026
// validate.go

package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/user-directory/internal/config"
)

// NewValidator builds a validator with the directory's field rules
// registered: orgemail (organization domain suffix), natphone
// (national phone format), dirusername (minimum username length) and
// adult (minimum age at registration).
func NewValidator(cfg config.DirectoryConfig) (*validator.Validate, error) {
	phoneRe, err := regexp.Compile(cfg.PhonePattern)
	if err != nil {
		return nil, fmt.Errorf("compile phone pattern: %w", err)
	}

	v := validator.New(validator.WithRequiredStructEnabled())

	rules := map[string]validator.Func{
		"orgemail": func(fl validator.FieldLevel) bool {
			email := strings.ToLower(fl.Field().String())
			return strings.HasSuffix(email, strings.ToLower(cfg.EmailDomain))
		},
		"natphone": func(fl validator.FieldLevel) bool {
			return phoneRe.MatchString(fl.Field().String())
		},
		"dirusername": func(fl validator.FieldLevel) bool {
			return len(fl.Field().String()) >= cfg.UsernameMinLen
		},
		"adult": func(fl validator.FieldLevel) bool {
			birthDate, ok := fl.Field().Interface().(time.Time)
			if !ok || birthDate.IsZero() {
				return false
			}
			return age(birthDate, time.Now()) >= cfg.MinAge
		},
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("register %s validation: %w", tag, err)
		}
	}

	return v, nil
}

func age(birthDate, now time.Time) int {
	years := now.Year() - birthDate.Year()
	if now.YearDay() < birthDate.YearDay() {
		years--
	}
	return years
}
