package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/twittoo/twittoo-api/internal/pkg/token"
)

func newTokens() *token.Manager {
	return token.NewManager("secret", time.Hour)
}

func runAuth(t *testing.T, mw echo.MiddlewareFunc, header string, next echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(next)(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, err
}

func httpMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, _ := he.Message.(string)
		return msg
	}
	return ""
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := newTokens()
	signed, err := tokens.Issue(3, "alice", "admin")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	called := false
	rec, err := runAuth(t, Auth(tokens), "Bearer "+signed, func(c echo.Context) error {
		called = true
		if c.Get(KeyUserID) != int64(3) {
			t.Fatalf("user id not set")
		}
		if c.Get(KeyUsername) != "alice" {
			t.Fatalf("username not set")
		}
		if c.Get(KeyRole) != "admin" {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec, err := runAuth(t, Auth(newTokens()), "", func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if httpMessage(err) != msgTokenRequired {
		t.Fatalf("unexpected message: %q", httpMessage(err))
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	rec, err := runAuth(t, Auth(newTokens()), "Token abc", func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if httpMessage(err) != msgTokenInvalid {
		t.Fatalf("unexpected message: %q", httpMessage(err))
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	rec, err := runAuth(t, Auth(newTokens()), "Bearer not-a-token", func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if httpMessage(err) != msgTokenInvalid {
		t.Fatalf("unexpected message: %q", httpMessage(err))
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	signed, _ := token.NewManager("other", time.Hour).Issue(1, "mallory", "admin")

	rec, _ := runAuth(t, Auth(newTokens()), "Bearer "+signed, func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOptionalAuth_AnonymousAndInvalidPassThrough(t *testing.T) {
	for _, header := range []string{"", "Bearer garbage", "Basic xyz"} {
		called := false
		rec, err := runAuth(t, OptionalAuth(newTokens()), header, func(c echo.Context) error {
			called = true
			if c.Get(KeyUserID) != nil {
				t.Fatalf("identity must not be set for %q", header)
			}
			return c.NoContent(http.StatusOK)
		})
		if err != nil || !called || rec.Code != http.StatusOK {
			t.Fatalf("header %q: expected pass-through, got %d %v", header, rec.Code, err)
		}
	}
}

func TestOptionalAuth_ValidTokenSetsIdentity(t *testing.T) {
	tokens := newTokens()
	signed, _ := tokens.Issue(9, "bob", "user")

	_, err := runAuth(t, OptionalAuth(tokens), "Bearer "+signed, func(c echo.Context) error {
		if c.Get(KeyUserID) != int64(9) {
			t.Fatalf("identity not set")
		}
		return c.NoContent(http.StatusOK)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
