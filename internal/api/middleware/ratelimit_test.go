package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func limitedCall(e *echo.Echo, mw echo.MiddlewareFunc, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := mw(ok)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	e := echo.New()
	mw := RateLimit(4, nil) // burst of 2

	for i := 0; i < 2; i++ {
		if rec := limitedCall(e, mw, "1.1.1.1"); rec.Code != http.StatusOK {
			t.Fatalf("burst request %d: expected 200, got %d", i, rec.Code)
		}
	}
	if rec := limitedCall(e, mw, "1.1.1.1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: expected 429, got %d", rec.Code)
	}
	if rec := limitedCall(e, mw, "2.2.2.2"); rec.Code != http.StatusOK {
		t.Fatalf("other clients have their own bucket, got %d", rec.Code)
	}
}

func TestRateLimit_RejectHookAndMessage(t *testing.T) {
	e := echo.New()
	rejected := 0
	mw := RateLimit(2, func(echo.Context) { rejected++ }) // burst of 1

	if rec := limitedCall(e, mw, "10.0.0.1"); rec.Code != http.StatusOK {
		t.Fatalf("first call: expected 200, got %d", rec.Code)
	}
	rec := limitedCall(e, mw, "10.0.0.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second call: expected 429, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "rate limit exceeded" {
		t.Fatalf("unexpected message %q", body["message"])
	}
	if rejected != 1 {
		t.Fatalf("expected reject hook once, got %d", rejected)
	}
}

func TestRateLimit_NonPositiveRateStillAllowsOne(t *testing.T) {
	e := echo.New()
	mw := RateLimit(0, nil)

	if rec := limitedCall(e, mw, "3.3.3.3"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := limitedCall(e, mw, "3.3.3.3"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}
