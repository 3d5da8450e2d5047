package http

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	postRateLimit  = 60 // requests per window, per client IP
	rateWindow     = time.Minute
	staleClientAge = 10 * time.Minute
)

// rateLimiter caps POST traffic per client IP with a fixed window
// counter. The form endpoints are the only write surface, so the window
// resets whenever a client goes quiet for longer than rateWindow.
type rateLimiter struct {
	mu       sync.Mutex
	counters map[string]*windowCounter
	done     chan struct{}
	stopOnce sync.Once
}

type windowCounter struct {
	windowStart time.Time
	count       int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		counters: make(map[string]*windowCounter),
		done:     make(chan struct{}),
	}
	go rl.evictLoop()
	return rl
}

// allow counts a request from clientIP against the current window and
// reports whether it stays under the limit.
func (rl *rateLimiter) allow(clientIP string, metrics *securityMetrics) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, ok := rl.counters[clientIP]
	if !ok || now.Sub(c.windowStart) > rateWindow {
		rl.counters[clientIP] = &windowCounter{windowStart: now, count: 1}
		return true
	}

	c.count++
	if c.count > postRateLimit {
		if metrics != nil {
			atomic.AddInt64(&metrics.rateLimitHits, 1)
		}
		return false
	}
	return true
}

// evictLoop periodically drops counters for clients that went idle, so
// the map stays bounded by recently-active IPs.
func (rl *rateLimiter) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictStale()
		case <-rl.done:
			return
		}
	}
}

func (rl *rateLimiter) evictStale() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-staleClientAge)
	for ip, c := range rl.counters {
		if c.windowStart.Before(cutoff) {
			delete(rl.counters, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}
