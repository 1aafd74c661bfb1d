package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// The limiter and cache must only ever run behind the auth middleware: a
// cached response served ahead of JWTAuth would bypass the token check and
// the role gates entirely, and a limiter running pre-auth cannot key on the
// staff identity.
func TestAuthRunsBeforeLimiterAndCache(t *testing.T) {
	const secret = "router-test-secret"

	ran := false
	var sawStaff uint64
	spy := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ran = true
			sawStaff = middleware.StaffID(c)
			// Short-circuit so the zero-value handlers are never invoked.
			return c.NoContent(http.StatusNoContent)
		}
	}

	e := echo.New()
	Register(e, Handlers{}, secret, spy, spy)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated request: status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if ran {
		t.Fatal("limiter/cache ran for a request the auth middleware rejected")
	}

	token, err := utils.NewAccessToken(secret, 7, "RECEPTIONIST", time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("authenticated request: status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if !ran {
		t.Fatal("limiter/cache did not run for an authenticated request")
	}
	if sawStaff != 7 {
		t.Errorf("limiter saw staff %d, want 7", sawStaff)
	}
}
