// AngelaMos | 2026
// handler_test.go

package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/user-directory/internal/config"
	"github.com/carterperez-dev/user-directory/internal/store"
)

func testDirectoryConfig() config.DirectoryConfig {
	return config.DirectoryConfig{
		EmailDomain:     "@if.cl",
		PhonePattern:    `^(\+?56)?9\d{8}$`,
		UsernameMinLen:  6,
		MinAge:          18,
		DefaultPageSize: 10,
	}
}

func newTestRouter(t *testing.T) (chi.Router, *Service) {
	t.Helper()

	cfg := testDirectoryConfig()

	records := store.New(func(u *User) string { return u.ID })
	repo := NewRepository(records)
	svc := NewService(repo, cfg)

	validate, err := NewValidator(cfg)
	require.NoError(t, err)

	r := chi.NewRouter()
	NewHandler(svc, validate).RegisterRoutes(r)

	return r, svc
}

func registerBody() map[string]any {
	return map[string]any{
		"first_name": "Maria",
		"last_name":  "Soto",
		"email":      "msoto@if.cl",
		"username":   "msoto_if",
		"password":   "secret#2026",
		"address":    "Av. Vitacura 2939, Vitacura",
		"phone":      "+56944444444",
		"birth_date": "1990-05-01T00:00:00Z",
	}
}

func doJSON(
	t *testing.T,
	r chi.Router,
	method, path string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Page       int `json:"page"`
		PageSize   int `json:"page_size"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/users", registerBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Maria Soto", resp.Name)
	assert.Equal(t, "msoto@if.cl", resp.Email)
	assert.True(t, resp.Active)
	assert.Equal(t, RoleOrdinary, resp.Role)

	assert.NotContains(t, rec.Body.String(), "argon2id")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterEndpointValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"wrong email domain", func(b map[string]any) {
			b["email"] = "msoto@gmail.com"
		}},
		{"malformed email", func(b map[string]any) {
			b["email"] = "not-an-email"
		}},
		{"short username", func(b map[string]any) {
			b["username"] = "ms"
		}},
		{"short password", func(b map[string]any) {
			b["password"] = "short"
		}},
		{"foreign phone", func(b map[string]any) {
			b["phone"] = "+14155550123"
		}},
		{"underage", func(b map[string]any) {
			b["birth_date"] = time.Now().UTC().
				AddDate(-10, 0, 0).Format(time.RFC3339)
		}},
		{"missing first name", func(b map[string]any) {
			delete(b, "first_name")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter(t)

			body := registerBody()
			tt.mutate(body)

			rec := doJSON(t, r, http.MethodPost, "/users", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, "BAD_REQUEST", env.Error.Code)
		})
	}
}

func TestRegisterEndpointDuplicates(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/users", registerBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	dupEmail := registerBody()
	dupEmail["username"] = "other_user"
	rec = doJSON(t, r, http.MethodPost, "/users", dupEmail)
	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_RESOURCE", env.Error.Code)
	assert.Equal(t, "email already exists", env.Error.Message)

	dupUsername := registerBody()
	dupUsername["email"] = "other@if.cl"
	rec = doJSON(t, r, http.MethodPost, "/users", dupUsername)
	assert.Equal(t, http.StatusConflict, rec.Code)
	env = decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "username already exists", env.Error.Message)
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/users", registerBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/auth/login", map[string]any{
		"email":    "msoto@if.cl",
		"password": "secret#2026",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var resp UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "msoto_if", resp.Username)
}

func TestLoginEndpointRejectsBadCredentials(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/users", registerBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	// Wrong password and unknown email return the same error.
	for _, body := range []map[string]any{
		{"email": "msoto@if.cl", "password": "wrongpass1"},
		{"email": "ghost@if.cl", "password": "secret#2026"},
	} {
		rec = doJSON(t, r, http.MethodPost, "/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
		assert.Equal(t, "invalid email or password", env.Error.Message)
	}
}

func TestListEndpointPaginationMeta(t *testing.T) {
	r, svc := newTestRouter(t)

	for _, username := range []string{"user_one", "user_two", "user_three"} {
		req := registerRequest()
		req.Email = username + "@if.cl"
		req.Username = username
		_, err := svc.Register(context.Background(), req)
		require.NoError(t, err)
	}

	rec := doJSON(t, r, http.MethodGet, "/users?page=2&page_size=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, 2, env.Meta.PageSize)
	assert.Equal(t, 3, env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)

	var users []UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 1)
}

func TestListEndpointDefaultPageSizeInMeta(t *testing.T) {
	r, svc := newTestRouter(t)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Page)
	assert.Equal(t, 10, env.Meta.PageSize)
	assert.Equal(t, 1, env.Meta.Total)
}

func TestListEndpointFilterAndSort(t *testing.T) {
	r, svc := newTestRouter(t)

	fixtures := []struct{ first, last, username string }{
		{"Ignacio", "Avendano", "iavendano"},
		{"David", "Araya", "daraya"},
		{"Carla", "Bustos", "cbustos"},
	}
	for _, f := range fixtures {
		req := registerRequest()
		req.FirstName = f.first
		req.LastName = f.last
		req.Email = f.username + "@if.cl"
		req.Username = f.username
		_, err := svc.Register(context.Background(), req)
		require.NoError(t, err)
	}

	rec := doJSON(
		t,
		r,
		http.MethodGet,
		"/users?last_name=a&sort_by=username&descending=true",
		nil,
	)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Total)

	var users []UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &users))
	require.Len(t, users, 2)
	assert.Equal(t, "iavendano", users[0].Username)
	assert.Equal(t, "daraya", users[1].Username)
}

func TestListEndpointHugePageNumber(t *testing.T) {
	r, svc := newTestRouter(t)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	rec := doJSON(
		t,
		r,
		http.MethodGet,
		"/users?page=9223372036854775807&page_size=10",
		nil,
	)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Total)

	var users []UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Empty(t, users)
}

func TestListEndpointRejectsBadParams(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{
		"/users?page_size=0",
		"/users?page_size=-5",
		"/users?page_size=ten",
		"/users?page=ten",
		"/users?active=maybe",
		"/users?descending=sideways",
	} {
		rec := doJSON(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestGetEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)

	created, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodGet, "/users/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var resp UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, created.ID, resp.ID)

	rec = doJSON(t, r, http.MethodGet, "/users/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	env = decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestUpdateEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)

	created, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	body := registerBody()
	delete(body, "password")
	body["first_name"] = "Maria Jose"

	rec := doJSON(t, r, http.MethodPut, "/users/"+created.ID, body)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var resp UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "Maria Jose Soto", resp.Name)

	rec = doJSON(t, r, http.MethodPut, "/users/does-not-exist", registerBody())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)

	created, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodDelete, "/users/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// The record survives as inactive and a repeat delete still succeeds.
	rec = doJSON(t, r, http.MethodGet, "/users/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	var resp UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.False(t, resp.Active)

	rec = doJSON(t, r, http.MethodDelete, "/users/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/users/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
