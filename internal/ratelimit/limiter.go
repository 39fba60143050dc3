package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type window struct {
	count int
	start time.Time
}

// Limiter caps accepted requests per client address within a fixed window.
// State lives in memory and resets on restart. This is deliberately
// approximate: a counter per address, reset when the window boundary passes.
type Limiter struct {
	windowLen time.Duration
	max       int
	clock     Clock

	mu      sync.Mutex
	entries map[string]*window
}

// New creates a Limiter allowing max requests per address per windowLen.
func New(windowLen time.Duration, max int) *Limiter {
	return NewWithClock(windowLen, max, realClock{})
}

// NewWithClock creates a Limiter with a custom clock (for testing).
func NewWithClock(windowLen time.Duration, max int, clock Clock) *Limiter {
	return &Limiter{
		windowLen: windowLen,
		max:       max,
		clock:     clock,
		entries:   make(map[string]*window),
	}
}

// Allow reports whether a request from addr is within its window budget and,
// if so, counts it.
func (l *Limiter) Allow(addr string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.entries[addr]
	if !ok {
		l.entries[addr] = &window{count: 1, start: now}
		return true
	}
	if now.Sub(w.start) > l.windowLen {
		w.count = 1
		w.start = now
		return true
	}
	if w.count >= l.max {
		return false
	}
	w.count++
	return true
}

// ClientAddr derives the client address a request is limited by: the first
// entry of X-Forwarded-For when present, else the host part of the socket
// address. The header is trusted as-is, so a spoofed value maps to a
// different bucket; tolerable for this endpoint's threat model.
func ClientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
