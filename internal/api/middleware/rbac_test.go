package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newRoleContext(userID int64, role string) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(KeyUserID, userID)
		c.Set(KeyRole, role)
	}
	return c, rec, e
}

func serve(e *echo.Echo, c echo.Context, h echo.HandlerFunc) error {
	err := h(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return err
}

func ok(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRBAC_Allows(t *testing.T) {
	c, rec, e := newRoleContext(1, "admin")

	called := false
	handler := RBAC("admin", "editor")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := serve(e, c, handler); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	c, rec, e := newRoleContext(1, "user")

	handler := RBAC("admin", "editor")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	_ = serve(e, c, handler)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_NoIdentity(t *testing.T) {
	c, rec, e := newRoleContext(0, "")

	_ = serve(e, c, RBAC("admin")(ok))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func owner(id int64, found bool, err error) OwnerResolver {
	return func(echo.Context) (int64, bool, error) { return id, found, err }
}

func TestOwnerOrRole(t *testing.T) {
	tests := []struct {
		name     string
		userID   int64
		role     string
		resolver OwnerResolver
		want     int
	}{
		{"owner", 5, "user", owner(5, true, nil), http.StatusOK},
		{"other user", 6, "user", owner(5, true, nil), http.StatusForbidden},
		{"elevated role", 6, "editor", owner(5, true, nil), http.StatusOK},
		{"admin role", 6, "admin", owner(5, true, nil), http.StatusOK},
		{"missing resource falls through", 6, "user", owner(0, false, nil), http.StatusOK},
		{"anonymous", 0, "", owner(5, true, nil), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec, e := newRoleContext(tt.userID, tt.role)
			_ = serve(e, c, OwnerOrRole(tt.resolver, "editor", "admin")(ok))
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestOwnerOrRole_ResolverError(t *testing.T) {
	c, _, _ := newRoleContext(6, "user")
	boom := errors.New("store down")

	err := OwnerOrRole(owner(0, false, boom), "admin")(ok)(c)
	if !errors.Is(err, boom) {
		t.Fatalf("expected resolver error, got %v", err)
	}
}

func TestOwnerOrRole_SkipsResolverForAllowedRole(t *testing.T) {
	c, _, _ := newRoleContext(6, "admin")
	resolver := func(echo.Context) (int64, bool, error) {
		t.Fatalf("resolver must not run for allowed roles")
		return 0, false, nil
	}

	if err := OwnerOrRole(resolver, "admin")(ok)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
