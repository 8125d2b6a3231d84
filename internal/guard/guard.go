// Package guard provides the per-operation mutual-exclusion token that
// serializes every externally invoked ledger operation. Each operation runs
// to completion as one unit: the token is acquired at entry and released on
// every exit path, and no operation blocks, suspends or retries internally
// while holding it.
package guard

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrReentry is returned by TryDo when an operation is already in flight.
var ErrReentry = errors.New("operation already in progress")

// Guard is the shared mutual-exclusion token.
type Guard struct {
	mu   sync.Mutex
	held atomic.Bool
}

// New creates a guard.
func New() *Guard {
	return &Guard{}
}

// Do runs fn while holding the token, blocking until it is available.
func (g *Guard) Do(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.held.Store(true)
	defer g.held.Store(false)
	return fn()
}

// TryDo runs fn while holding the token, or returns ErrReentry immediately
// when another operation holds it. Used by entrypoints that must never wait
// behind an in-flight operation (re-entrant callbacks from the transfer
// primitive included).
func (g *Guard) TryDo(fn func() error) error {
	if !g.mu.TryLock() {
		return ErrReentry
	}
	defer g.mu.Unlock()
	g.held.Store(true)
	defer g.held.Store(false)
	return fn()
}

// Held reports whether an operation is currently in flight.
func (g *Guard) Held() bool {
	return g.held.Load()
}
