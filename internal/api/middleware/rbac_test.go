package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/carelink/hospital-portal/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func rbacContext(e *echo.Echo, userID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	return c, rec
}

func TestRBAC_AllowedRole(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[string]*domain.User{
		"user_1": {ID: "user_1", Role: domain.RoleAdmin},
	}}

	c, rec := rbacContext(e, "user_1")
	called := false
	handler := RBAC(repo, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected handler to run, code=%d", rec.Code)
	}
}

func TestRBAC_ForbiddenRole(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[string]*domain.User{
		"user_1": {ID: "user_1", Role: domain.RoleDoctor},
	}}

	c, rec := rbacContext(e, "user_1")
	handler := RBAC(repo, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_StoredRoleWins(t *testing.T) {
	e := echo.New()
	// Token claim says admin, but the store has since demoted the user.
	repo := &stubUserRepo{users: map[string]*domain.User{
		"user_1": {ID: "user_1", Role: domain.RolePatient},
	}}

	c, rec := rbacContext(e, "user_1")
	c.Set("role", "admin")
	handler := RBAC(repo, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_UserVanished(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[string]*domain.User{}}

	c, rec := rbacContext(e, "user_1")
	handler := RBAC(repo, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRBAC_MissingClaims(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[string]*domain.User{}}

	c, rec := rbacContext(e, "")
	handler := RBAC(repo, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
