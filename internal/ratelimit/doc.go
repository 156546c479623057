// Package ratelimit implements per-client admission control using the
// token bucket algorithm. Each client identity gets a lazily created
// bucket that refills continuously over wall-clock time; a request is
// admitted only when its bucket holds at least one token.
package ratelimit
