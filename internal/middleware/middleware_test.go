package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shotboard/internal/shared/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimiterRejectsBurstOverflow(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, BurstSize: 2})
	h := rl.Middleware(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests && rec.Header().Get("Retry-After") != "1" {
			t.Fatalf("expected Retry-After header")
		}
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("other clients have their own bucket, got %d", rec.Code)
	}
}

func TestRateLimiterDisabledPassesThrough(t *testing.T) {
	h := NewRateLimiter(config.RateLimitConfig{Enabled: false}).Middleware(okHandler)

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/teams", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: got %d", i, rec.Code)
		}
	}
}

func TestRateLimiterCleanupDropsRefilledClients(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 10, BurstSize: 1})
	rl.getLimiter("10.0.0.1").Allow()

	if n := rl.cleanup(time.Now().Add(time.Minute)); n != 1 {
		t.Fatalf("expected the refilled client removed, got %d", n)
	}
	if len(rl.clients) != 0 {
		t.Fatalf("expected no clients left")
	}
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if ip := getClientIP(req, false); ip != "192.168.1.1" {
		t.Fatalf("untrusted proxy headers must be ignored, got %s", ip)
	}
	if ip := getClientIP(req, true); ip != "203.0.113.7" {
		t.Fatalf("expected first forwarded address, got %s", ip)
	}
}

func TestCORSAllowsFrontendOrigin(t *testing.T) {
	h := NewCORS(config.FrontendConfig{URL: "http://localhost:3000"}).Middleware(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected frontend origin allowed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/teams", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected origin allowed: %q", got)
	}
}
