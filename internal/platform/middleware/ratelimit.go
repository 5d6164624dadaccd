// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/newsgate/internal/platform/apperr"
	"github.com/taibuivan/newsgate/internal/platform/constants"
	"github.com/taibuivan/newsgate/internal/platform/respond"
)

var errRateLimited = apperr.New("TOO_MANY_REQUESTS", "Rate limit exceeded", http.StatusTooManyRequests)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// buckets holds one token bucket per client IP.
type buckets struct {
	mu    sync.Mutex
	byIP  map[string]*bucket
	rps   rate.Limit
	burst int
}

func (b *buckets) allow(ip string, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.byIP[ip]
	if !ok {
		entry = &bucket{limiter: rate.NewLimiter(b.rps, b.burst)}
		b.byIP[ip] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// sweep drops buckets idle since before cutoff.
func (b *buckets) sweep(cutoff time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ip, entry := range b.byIP {
		if entry.lastSeen.Before(cutoff) {
			delete(b.byIP, ip)
		}
	}
}

// janitor sweeps until ctx is done.
func (b *buckets) janitor(ctx context.Context) {
	ticker := time.NewTicker(constants.RateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			b.sweep(now.Add(-constants.RateLimitClientTTL))
		}
	}
}

// RateLimit applies the default per-IP budget. Idle buckets are swept in the
// background until ctx is cancelled.
func RateLimit(ctx context.Context) func(http.Handler) http.Handler {
	return RateLimitWith(ctx, rate.Limit(constants.DefaultRateLimitRPS), constants.DefaultRateLimitBurst)
}

// RateLimitWith is [RateLimit] with an explicit refill rate and burst.
func RateLimitWith(ctx context.Context, rps rate.Limit, burst int) func(http.Handler) http.Handler {
	limits := &buckets{byIP: make(map[string]*bucket), rps: rps, burst: burst}
	go limits.janitor(ctx)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !limits.allow(RealIP(request), time.Now()) {
				respond.Error(writer, request, errRateLimited)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
