package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"available":true}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decodePayload rejected its own encoding")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want %d", status, http.StatusOK)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", gotHdr.Get("Content-Type"))
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	if _, _, _, ok := decodePayload([]byte("short")); ok {
		t.Error("truncated payload should be rejected")
	}
	if _, _, _, ok := decodePayload([]byte{0, 0, 0, 200, 255, 255, 255, 255}); ok {
		t.Error("payload with impossible header length should be rejected")
	}
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}

	if _, err := cw.Write([]byte("abcdef")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := cw.buf.String(); got != "abcd" {
		t.Errorf("captured %q, want %q", got, "abcd")
	}
	// The client still receives the full body.
	if got := rec.Body.String(); got != "abcdef" {
		t.Errorf("forwarded %q, want %q", got, "abcdef")
	}
}

func TestCacheKeySeparatesStaffIdentities(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	keyFor := func(staffID uint64) string {
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/me")
		if staffID != 0 {
			c.Set(CtxStaffID, staffID)
		}
		return cacheKeyFrom(cfg, c)
	}

	k1, k2, anon := keyFor(1), keyFor(2), keyFor(0)
	if k1 == k2 {
		t.Errorf("staff 1 and staff 2 share cache key %q", k1)
	}
	if k1 == anon {
		t.Errorf("staff 1 and unauthenticated share cache key %q", k1)
	}
	if again := keyFor(1); again != k1 {
		t.Errorf("key for staff 1 not stable: %q vs %q", again, k1)
	}
}

func TestBuildRateKeyStrategies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/availability", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/availability")
	c.Set(CtxStaffID, uint64(7))

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "staff"}
	if got := buildRateKey(cfg, c); got != "rl:staff:7" {
		t.Errorf("staff key = %q, want rl:staff:7", got)
	}

	cfg.KeyStrategy = "route"
	if got := buildRateKey(cfg, c); got != "rl:route:GET /v1/availability" {
		t.Errorf("route key = %q", got)
	}
}
