package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// LimitStore decides whether a client may take another request in the
// current window. Implementations must be safe for concurrent use.
type LimitStore interface {
	Allow(key string, now time.Time) bool
}

type bucket struct {
	count int
	until time.Time
}

// MemoryLimitStore is a fixed-window counter bounded to maxKeys distinct
// clients. When full, expired buckets are evicted first; if none are
// expired the request is allowed rather than growing the map.
type MemoryLimitStore struct {
	mu      sync.Mutex
	limit   int
	per     time.Duration
	maxKeys int
	buckets map[string]*bucket
}

func NewMemoryLimitStore(limit int, per time.Duration, maxKeys int) *MemoryLimitStore {
	if maxKeys <= 0 {
		maxKeys = 10000
	}
	return &MemoryLimitStore{
		limit:   limit,
		per:     per,
		maxKeys: maxKeys,
		buckets: make(map[string]*bucket),
	}
}

func (s *MemoryLimitStore) Allow(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[key]
	if !ok || now.After(b.until) {
		if !ok && len(s.buckets) >= s.maxKeys {
			s.evictExpired(now)
			if len(s.buckets) >= s.maxKeys {
				return true
			}
		}
		b = &bucket{until: now.Add(s.per)}
		s.buckets[key] = b
	}
	if b.count >= s.limit {
		return false
	}
	b.count++
	return true
}

func (s *MemoryLimitStore) evictExpired(now time.Time) {
	for key, b := range s.buckets {
		if now.After(b.until) {
			delete(s.buckets, key)
		}
	}
}

// RateLimit rejects requests with 429 once a client exhausts its window.
func RateLimit(store LimitStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !store.Allow(clientIPForRateLimit(r), time.Now()) {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIPForRateLimit(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		for _, part := range strings.Split(xf, ",") {
			ip := strings.TrimSpace(part)
			if ip == "" {
				continue
			}
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		if net.ParseIP(host) != nil {
			return host
		}
	} else if net.ParseIP(r.RemoteAddr) != nil {
		return r.RemoteAddr
	}

	return r.RemoteAddr
}
