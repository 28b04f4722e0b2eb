package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RateLimiter provides rate limiting functionality
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
	// RetryAfter returns how long key has to wait until the next request is allowed.
	RetryAfter(key string) time.Duration
	// Prune drops keys without requests in the current window and returns how many were dropped.
	Prune() int
}

// SlidingWindowLimiter implements sliding window rate limiting
type SlidingWindowLimiter struct {
	mu         sync.Mutex
	windows    map[string]*window
	limit      int
	windowSize time.Duration
	now        func() time.Time
}

type window struct {
	requests []time.Time
	mu       sync.Mutex
}

// NewSlidingWindowLimiter creates a new sliding window rate limiter
func NewSlidingWindowLimiter(limit int, windowSize time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		windows:    make(map[string]*window),
		limit:      limit,
		windowSize: windowSize,
		now:        time.Now,
	}
}

// Allow checks if a request is allowed
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.Lock()
	w, exists := l.windows[key]
	if !exists {
		w = &window{}
		l.windows[key] = w
	}
	l.mu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()

	now := l.now()
	w.evict(now.Add(-l.windowSize))

	if len(w.requests) >= l.limit {
		return false, nil
	}

	w.requests = append(w.requests, now)
	return true, nil
}

// Reset resets the rate limit for a key
func (l *SlidingWindowLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.windows, key)
	return nil
}

func (l *SlidingWindowLimiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	w, exists := l.windows[key]
	l.mu.Unlock()
	if !exists {
		return 0
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := l.now()
	w.evict(now.Add(-l.windowSize))
	if len(w.requests) < l.limit {
		return 0
	}
	// the oldest request leaves the window first
	return w.requests[0].Add(l.windowSize).Sub(now)
}

func (l *SlidingWindowLimiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	windowStart := l.now().Add(-l.windowSize)
	pruned := 0
	for key, w := range l.windows {
		w.mu.Lock()
		w.evict(windowStart)
		idle := len(w.requests) == 0
		w.mu.Unlock()
		if idle {
			delete(l.windows, key)
			pruned++
		}
	}
	return pruned
}

// Keys returns the number of tracked keys.
func (l *SlidingWindowLimiter) Keys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// evict removes requests at or before windowStart. Caller holds w.mu.
func (w *window) evict(windowStart time.Time) {
	i := 0
	for i < len(w.requests) && !w.requests[i].After(windowStart) {
		i++
	}
	if i > 0 {
		w.requests = append(w.requests[:0], w.requests[i:]...)
	}
}

// CompositeRateLimiter combines multiple rate limiters
type CompositeRateLimiter struct {
	limiters []RateLimiter
}

// NewCompositeRateLimiter creates a new composite rate limiter
func NewCompositeRateLimiter(limiters ...RateLimiter) *CompositeRateLimiter {
	return &CompositeRateLimiter{
		limiters: limiters,
	}
}

// Allow checks if a request is allowed by all limiters
func (l *CompositeRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	for _, limiter := range l.limiters {
		allowed, err := limiter.Allow(ctx, key)
		if err != nil {
			return false, err
		}
		if !allowed {
			return false, nil
		}
	}
	return true, nil
}

// Reset resets all limiters for a key
func (l *CompositeRateLimiter) Reset(ctx context.Context, key string) error {
	for _, limiter := range l.limiters {
		if err := limiter.Reset(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (l *CompositeRateLimiter) RetryAfter(key string) time.Duration {
	var longest time.Duration
	for _, limiter := range l.limiters {
		longest = max(longest, limiter.RetryAfter(key))
	}
	return longest
}

func (l *CompositeRateLimiter) Prune() int {
	pruned := 0
	for _, limiter := range l.limiters {
		pruned += limiter.Prune()
	}
	return pruned
}

// IPRateLimiter wraps a rate limiter for IP-based limiting within a named scope
type IPRateLimiter struct {
	scope   string
	limiter RateLimiter
}

// NewIPRateLimiter creates a new IP-based rate limiter
func NewIPRateLimiter(scope string, limiter RateLimiter) *IPRateLimiter {
	return &IPRateLimiter{
		scope:   scope,
		limiter: limiter,
	}
}

// Scope names the limiter in logs and metrics.
func (l *IPRateLimiter) Scope() string {
	return l.scope
}

// Allow checks if a request from an IP is allowed
func (l *IPRateLimiter) Allow(ctx context.Context, ip string) (bool, error) {
	return l.limiter.Allow(ctx, l.key(ip))
}

func (l *IPRateLimiter) RetryAfter(ip string) time.Duration {
	return l.limiter.RetryAfter(l.key(ip))
}

func (l *IPRateLimiter) Prune() int {
	return l.limiter.Prune()
}

func (l *IPRateLimiter) key(ip string) string {
	return fmt.Sprintf("%s:ip:%s", l.scope, ip)
}
