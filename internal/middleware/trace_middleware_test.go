package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"commCoach/business/engine"

	"github.com/labstack/echo/v4"
)

func TestTraceIDGeneratesAndPropagates(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	handler := TraceID()(func(c echo.Context) error {
		seen = engine.TraceIDFromContext(c.Request().Context())
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if seen == "" {
		t.Fatal("expected a generated trace id on the request context")
	}
	if got := rec.Header().Get(echo.HeaderXRequestID); got != seen {
		t.Fatalf("expected response header %q to match context trace id %q", got, seen)
	}
}

func TestTraceIDHonorsCallerHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "caller-supplied")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	handler := TraceID()(func(c echo.Context) error {
		seen = engine.TraceIDFromContext(c.Request().Context())
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if seen != "caller-supplied" {
		t.Fatalf("expected caller-supplied trace id, got %q", seen)
	}
}
