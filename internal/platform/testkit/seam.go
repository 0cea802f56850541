package testkit

import (
	"sync"
	"testing"
)

// seams are package globals, so tests that swap them take turns
var (
	seam   sync.Mutex
	heldMu sync.Mutex
	held   = map[testing.TB]bool{}
)

// Serial holds the seam lock until t finishes. Calling it again from the same
// test is a no op
func Serial(t testing.TB) {
	t.Helper()
	heldMu.Lock()
	already := held[t]
	heldMu.Unlock()
	if already {
		return
	}

	seam.Lock()
	heldMu.Lock()
	held[t] = true
	heldMu.Unlock()
	t.Cleanup(func() {
		heldMu.Lock()
		delete(held, t)
		heldMu.Unlock()
		seam.Unlock()
	})
}

// Swap points *target at replacement for the rest of t, restoring the old
// value on cleanup. It implies Serial
func Swap[T any](t testing.TB, target *T, replacement T) {
	t.Helper()
	Serial(t)
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}
