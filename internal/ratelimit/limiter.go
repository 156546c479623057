package ratelimit

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config defines the admission policy applied to every client.
type Config struct {
	// RequestsPerMinute is the sustained rate each client may hold.
	RequestsPerMinute int
	// BurstCapacity is the bucket size, i.e. how many requests a
	// client may issue instantly from a full bucket.
	BurstCapacity int
	// EvictionIdle is how long a bucket may sit untouched before the
	// sweep removes it. Zero disables eviction.
	EvictionIdle time.Duration
}

// DefaultConfig returns the standard admission policy: 60 sustained
// requests per minute with a burst of 10, idle buckets evicted after
// ten minutes.
func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 60,
		BurstCapacity:     10,
		EvictionIdle:      10 * time.Minute,
	}
}

// Outcome reports an admission decision together with the bucket that
// made it, so the middleware can annotate the response with the
// remaining balance.
type Outcome struct {
	Allowed   bool
	Remaining int
}

// Limiter owns the client-identity → bucket mapping. The outer mutex
// guards only lookup and insertion; the refill+consume critical section
// runs under each bucket's own lock, so distinct clients never contend.
type Limiter struct {
	config Config

	mu      sync.Mutex
	buckets map[string]*TokenBucket

	timeFunc func() time.Time
}

// NewLimiter creates a limiter with no buckets; each client's bucket is
// created full on that client's first request.
func NewLimiter(config Config) *Limiter {
	return &Limiter{
		config:   config,
		buckets:  make(map[string]*TokenBucket),
		timeFunc: time.Now,
	}
}

// ClientIdentity derives the rate-limit key for a request: the first
// comma-separated entry of X-Forwarded-For when present (trimmed), else
// the direct peer address, else "unknown".
//
// Trust assumption: the forwarded-for header is honored unconditionally,
// which is only safe behind a reverse proxy that overwrites it. A client
// talking to this server directly can spoof its identity.
func ClientIdentity(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// Admit looks up or lazily creates the bucket for identity and spends
// one token from it. Remaining reflects the balance after the decision.
func (l *Limiter) Admit(identity string) Outcome {
	b := l.bucket(identity)
	allowed := b.Consume(1)
	return Outcome{Allowed: allowed, Remaining: b.Remaining()}
}

// Limit reports the configured sustained rate, for response headers.
func (l *Limiter) Limit() int {
	return l.config.RequestsPerMinute
}

// bucket returns the bucket for identity, creating it if this is the
// first request from that identity. Creation happens under the map lock
// so concurrent first requests share a single bucket.
func (l *Limiter) bucket(identity string) *TokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[identity]
	if !ok {
		refillRate := float64(l.config.RequestsPerMinute) / 60.0
		b = newTokenBucket(float64(l.config.BurstCapacity), refillRate, l.timeFunc)
		l.buckets[identity] = b
	}
	return b
}

// Sweep removes buckets that have not been touched for the configured
// idle window. A removed bucket is indistinguishable from a never-seen
// client: the next request recreates it full, which is exactly the
// balance an idle bucket would have refilled to.
func (l *Limiter) Sweep() {
	if l.config.EvictionIdle <= 0 {
		return
	}

	cutoff := l.timeFunc().Add(-l.config.EvictionIdle)

	l.mu.Lock()
	defer l.mu.Unlock()
	for identity, b := range l.buckets {
		if b.LastRefill().Before(cutoff) {
			delete(l.buckets, identity)
		}
	}
}

// StartSweeper runs Sweep once a minute until ctx is cancelled.
func (l *Limiter) StartSweeper(ctx context.Context) {
	if l.config.EvictionIdle <= 0 {
		return
	}

	ticker := time.NewTicker(time.Minute)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Sweep()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// size reports the current bucket count; used by the sweep tests.
func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
