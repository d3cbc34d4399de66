package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/voxly/errors"
)

func newEcho(t *testing.T, got *string) *echo.Echo {
	t.Helper()
	e := echo.New()
	respond := func(c echo.Context, err error) error {
		return c.String(http.StatusBadRequest, err.Error())
	}
	e.GET("/sessions/:id", func(c echo.Context) error {
		*got = SessionID(c)
		return c.NoContent(http.StatusOK)
	}, RequireSessionID(respond))
	return e
}

func TestRequireSessionIDRejectsMalformed(t *testing.T) {
	var got string
	e := newEcho(t, &got)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/nope", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if want := errors.ErrInvalidArgument("session id must be a valid UUID").Error(); rec.Body.String() != want {
		t.Fatalf("expected %q, got %q", want, rec.Body.String())
	}
	if got != "" {
		t.Fatalf("handler must not run")
	}
}

func TestRequireSessionIDCanonicalizes(t *testing.T) {
	var got string
	e := newEcho(t, &got)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/6BA7B810-9DAD-11D1-80B4-00C04FD430C8", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Fatalf("unexpected id %q", got)
	}
}
