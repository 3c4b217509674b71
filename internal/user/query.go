// AngelaMos | 2026
// query.go

package user

import (
	"fmt"
	"sort"
	"strings"

	"github.com/carterperez-dev/user-directory/internal/core"
)

// sortKeys maps the recognized sort_by values to ordinal comparators.
// Anything else, including the empty string, leaves store order
// untouched.
var sortKeys = map[string]func(a, b *User) bool{
	"first_name": func(a, b *User) bool { return a.FirstName < b.FirstName },
	"last_name":  func(a, b *User) bool { return a.LastName < b.LastName },
	"email":      func(a, b *User) bool { return a.Email < b.Email },
	"username":   func(a, b *User) bool { return a.Username < b.Username },
	"created_at": func(a, b *User) bool { return a.CreatedAt.Before(b.CreatedAt) },
}

// RunQuery computes one page over records plus the total match count.
// The order of operations is fixed: conjunctive filters, then the
// total, then a stable sort, then the page window. The total is taken
// before pagination so it is invariant under page and sort changes.
func RunQuery(records []*User, params ListUsersParams) ([]*User, int, error) {
	if params.PageSize <= 0 {
		return nil, 0, fmt.Errorf(
			"run query: page size must be positive, got %d: %w",
			params.PageSize,
			core.ErrInvalidInput,
		)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}

	filtered := make([]*User, 0, len(records))
	for _, u := range records {
		if matches(u, params) {
			filtered = append(filtered, u)
		}
	}

	total := len(filtered)

	if less, ok := sortKeys[params.SortBy]; ok {
		if params.Descending {
			sort.SliceStable(filtered, func(i, j int) bool {
				return less(filtered[j], filtered[i])
			})
		} else {
			sort.SliceStable(filtered, func(i, j int) bool {
				return less(filtered[i], filtered[j])
			})
		}
	}

	// Decide past-the-end by division so a huge page number cannot
	// overflow the start offset into a negative slice index.
	if page-1 > (total-1)/params.PageSize {
		return []*User{}, total, nil
	}

	start := (page - 1) * params.PageSize
	if start >= total {
		return []*User{}, total, nil
	}

	end := start + params.PageSize
	if end > total {
		end = total
	}

	return filtered[start:end], total, nil
}

func matches(u *User, params ListUsersParams) bool {
	if !containsFold(u.FirstName, params.FirstName) {
		return false
	}
	if !containsFold(u.LastName, params.LastName) {
		return false
	}
	if !containsFold(u.Username, params.Username) {
		return false
	}
	if !containsFold(u.Email, params.Email) {
		return false
	}
	if params.Active != nil && u.IsActive() != *params.Active {
		return false
	}
	return true
}

// containsFold is a case-insensitive substring check where an empty
// filter means "no constraint", not "match the empty string".
func containsFold(field, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(filter))
}
