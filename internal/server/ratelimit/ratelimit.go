// Package ratelimit provides token-bucket rate limiting for the
// inference-backed API endpoints.
package ratelimit

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// TokenBucket allows a burst of requests with tokens refilling at a steady rate.
type TokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// allow checks if a token is available and consumes it if so.
func (tb *TokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// Class identifies a rate-limited request category.
type Class string

// Request classes. Inference-backed endpoints are limited separately because
// their upstream costs differ by an order of magnitude.
const (
	ClassResolve  Class = "resolve"
	ClassCritique Class = "critique"
	ClassTips     Class = "tips"
)

// Config holds per-class bucket settings.
type Config struct {
	Capacity   map[Class]int
	RefillRate map[Class]float64
}

// LoadConfig reads limits from the environment, falling back to defaults.
func LoadConfig() Config {
	cfg := Config{
		Capacity: map[Class]int{
			ClassResolve:  5,
			ClassCritique: 3,
			ClassTips:     30,
		},
		RefillRate: map[Class]float64{
			ClassResolve:  0.1,
			ClassCritique: 0.05,
			ClassTips:     1.0,
		},
	}

	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_RESOLVE_BURST")); err == nil && v > 0 {
		cfg.Capacity[ClassResolve] = v
	}
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_CRITIQUE_BURST")); err == nil && v > 0 {
		cfg.Capacity[ClassCritique] = v
	}
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_TIPS_BURST")); err == nil && v > 0 {
		cfg.Capacity[ClassTips] = v
	}

	return cfg
}

// Limiter holds one bucket per request class.
type Limiter struct {
	buckets map[Class]*TokenBucket
}

// NewLimiter creates a Limiter from config.
func NewLimiter(cfg Config) *Limiter {
	buckets := make(map[Class]*TokenBucket, len(cfg.Capacity))
	for class, capacity := range cfg.Capacity {
		rate := cfg.RefillRate[class]
		if rate <= 0 {
			rate = 0.1
		}
		buckets[class] = newTokenBucket(capacity, rate)
	}
	return &Limiter{buckets: buckets}
}

// Allow reports whether a request of the given class may proceed.
// Unknown classes are always allowed.
func (l *Limiter) Allow(class Class) bool {
	bucket, ok := l.buckets[class]
	if !ok {
		return true
	}
	return bucket.allow()
}
