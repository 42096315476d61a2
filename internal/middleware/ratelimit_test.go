package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMemoryLimitStoreWindow(t *testing.T) {
	store := NewMemoryLimitStore(2, time.Minute, 100)
	now := time.Now()

	if !store.Allow("a", now) || !store.Allow("a", now) {
		t.Fatalf("first two requests should be allowed")
	}
	if store.Allow("a", now) {
		t.Fatalf("third request in window should be rejected")
	}
	if !store.Allow("b", now) {
		t.Fatalf("other clients have their own window")
	}
	if !store.Allow("a", now.Add(2*time.Minute)) {
		t.Fatalf("window reset should allow again")
	}
}

func TestMemoryLimitStoreBounded(t *testing.T) {
	store := NewMemoryLimitStore(1, time.Minute, 3)
	now := time.Now()

	for i := 0; i < 3; i++ {
		store.Allow(fmt.Sprintf("client-%d", i), now)
	}
	// Map is full with live buckets; new clients pass through unthrottled
	// instead of growing the map.
	if !store.Allow("overflow", now) {
		t.Fatalf("overflow client should not be rejected")
	}
	if len(store.buckets) != 3 {
		t.Fatalf("store grew past its bound: %d keys", len(store.buckets))
	}

	// After the window passes, expired buckets are evicted to make room.
	later := now.Add(2 * time.Minute)
	if !store.Allow("fresh", later) {
		t.Fatalf("fresh client should be allowed after eviction")
	}
	if _, ok := store.buckets["fresh"]; !ok {
		t.Fatalf("fresh client should be tracked after eviction")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimit(NewMemoryLimitStore(1, time.Minute, 10))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.10:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: got %d, want 429", rec.Code)
	}
}

func TestClientIPForRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		remoteAddr string
		want       string
	}{
		{
			name:       "single ip",
			header:     "203.0.113.1",
			remoteAddr: "198.51.100.10:1234",
			want:       "203.0.113.1",
		},
		{
			name:       "multiple ips use first",
			header:     " 203.0.113.1 , 198.51.100.2 ",
			remoteAddr: "198.51.100.10:1234",
			want:       "203.0.113.1",
		},
		{
			name:       "invalid forwarded falls back",
			header:     "invalid",
			remoteAddr: "198.51.100.10:1234",
			want:       "198.51.100.10",
		},
		{
			name:       "ipv6 forwarded",
			header:     "2001:db8::1",
			remoteAddr: net.JoinHostPort("2001:db8::2", "443"),
			want:       "2001:db8::1",
		},
		{
			name:       "remote without port",
			header:     "invalid",
			remoteAddr: "203.0.113.1",
			want:       "203.0.113.1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.header != "" {
				req.Header.Set("X-Forwarded-For", tc.header)
			}
			if got := clientIPForRateLimit(req); got != tc.want {
				t.Fatalf("clientIPForRateLimit() = %q, want %q", got, tc.want)
			}
		})
	}
}
