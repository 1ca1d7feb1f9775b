// Package ratelimit provides the in-memory token bucket limiter used by the
// API middleware.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/zerowrap"
	"golang.org/x/time/rate"

	"github.com/bnema/ocicomp/internal/boundaries/out"
)

var _ out.RateLimiter = (*MemoryStore)(nil)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryStore keeps one token bucket per key. Buckets idle for longer than
// the configured TTL are evicted by Sweep.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rps     float64
	burst   int
	idleTTL time.Duration
	now     func() time.Time
	log     zerowrap.Logger
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithIdleTTL sets how long an unused bucket is kept. Zero keeps buckets forever.
func WithIdleTTL(ttl time.Duration) Option {
	return func(s *MemoryStore) {
		s.idleTTL = ttl
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore creates a store allowing rps requests per second per key
// with the given burst.
func NewMemoryStore(rps float64, burst int, log zerowrap.Logger, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		buckets: make(map[string]*bucket),
		rps:     rps,
		burst:   burst,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow reports whether one request for key may proceed.
func (s *MemoryStore) Allow(ctx context.Context, key string) bool {
	return s.AllowN(ctx, key, 1)
}

// AllowN reports whether n requests for key may proceed.
func (s *MemoryStore) AllowN(_ context.Context, key string, n int) bool {
	now := s.now()
	return s.bucketFor(key, now).AllowN(now, n)
}

func (s *MemoryStore) bucketFor(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Limit(s.rps), s.burst)}
		s.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// Len returns the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

// Sweep drops buckets idle for longer than the TTL and returns how many
// were removed.
func (s *MemoryStore) Sweep() int {
	if s.idleTTL <= 0 {
		return 0
	}

	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, b := range s.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(s.buckets, key)
			removed++
		}
	}
	return removed
}

// Run sweeps idle buckets every interval until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	if s.idleTTL <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Debug().
					Str(zerowrap.FieldLayer, "adapter").
					Str(zerowrap.FieldAdapter, "ratelimit").
					Int(zerowrap.FieldCount, n).
					Msg("evicted idle rate limit buckets")
			}
		}
	}
}
