// Package txguard provides a debug guard asserting that world state is only
// mutated from the goroutine currently running the tick. A violation means a
// session or network goroutine reached into the simulation directly, which
// the ownership model forbids.
package txguard

import (
	"sync/atomic"
)

// Guard tracks the goroutine allowed to touch the guarded state. The zero
// value permits everything until Arm is called for the first time.
type Guard struct {
	owner atomic.Uint64
	armed atomic.Bool
}

// New returns a fresh, unarmed Guard.
func New() *Guard {
	return &Guard{}
}

// Arm marks the calling goroutine as the owner for the current tick.
func (g *Guard) Arm() {
	g.owner.Store(goroutineID())
	g.armed.Store(true)
}

// Disarm releases ownership between ticks.
func (g *Guard) Disarm() {
	g.armed.Store(false)
}

// Assert panics if the guard is armed and the calling goroutine is not the
// owner. The panic is an internal invariant violation: the process is
// assumed restartable.
func (g *Guard) Assert() {
	if g.armed.Load() && g.owner.Load() != goroutineID() {
		panic("txguard: world state touched outside the tick goroutine")
	}
}
