package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket tracks a refillable credit balance for a single client.
// The balance is a float so that sub-second request intervals accrue
// fractional tokens instead of rounding to zero.
//
// All methods are safe for concurrent use; the refill-then-consume
// read-modify-write runs under the bucket's own mutex so that two
// simultaneous requests from the same client cannot both observe a
// pre-refill balance.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time

	timeFunc func() time.Time // injectable for testing
}

// NewTokenBucket creates a bucket that starts full. capacity is the
// maximum (burst) balance; refillRate is expressed in tokens per second.
func NewTokenBucket(capacity, refillRate float64) *TokenBucket {
	return newTokenBucket(capacity, refillRate, time.Now)
}

func newTokenBucket(capacity, refillRate float64, timeFunc func() time.Time) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     capacity,
		lastRefill: timeFunc(),
		timeFunc:   timeFunc,
	}
}

// Consume refills the bucket proportionally to the time elapsed since
// the last refill, then attempts to debit n tokens. It returns true and
// debits on success; on failure the balance is left untouched. A debit
// is never rolled back, even if the request that paid for it is later
// cancelled.
func (b *TokenBucket) Consume(n float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refillLocked()

	if b.tokens >= n {
		b.tokens -= n
		return true
	}
	return false
}

// Remaining returns the current balance after applying any pending
// refill, floored to an integer for the X-RateLimit-Remaining header.
func (b *TokenBucket) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refillLocked()
	return int(b.tokens)
}

// LastRefill reports when the bucket last observed the clock. The
// eviction sweep uses this as a proxy for client activity.
func (b *TokenBucket) LastRefill() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastRefill
}

// refillLocked credits tokens for the elapsed wall-clock interval and
// advances lastRefill. The caller must hold b.mu. Refill is monotonic:
// a non-positive elapsed interval (clock step, same-instant calls)
// credits nothing and never reduces the balance.
func (b *TokenBucket) refillLocked() {
	now := b.timeFunc()
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * b.refillRate
		if b.tokens > b.capacity {
			b.tokens = b.capacity
		}
	}
	b.lastRefill = now
}
