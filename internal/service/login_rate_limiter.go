package service

import (
	"strings"
	"sync"
	"time"
)

// LoginRateLimiter limita intentos de login por subject del token externo.
type LoginRateLimiter interface {
	Allow(key string) bool
}

type memoryLoginRateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	counts map[string]*rateWindow
}

type rateWindow struct {
	start time.Time
	count int
}

func NewLoginRateLimiter(window time.Duration, max int) LoginRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &memoryLoginRateLimiter{
		window: window,
		max:    max,
		counts: make(map[string]*rateWindow),
	}
}

func (l *memoryLoginRateLimiter) Allow(key string) bool {
	normalizedKey := strings.ToLower(strings.TrimSpace(key))
	if normalizedKey == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC()
	w, ok := l.counts[normalizedKey]
	if !ok || now.Sub(w.start) >= l.window {
		l.counts[normalizedKey] = &rateWindow{start: now, count: 1}
		return true
	}
	w.count++
	return w.count <= l.max
}
