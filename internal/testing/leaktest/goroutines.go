// Package leaktest checks that concurrent tests leave no goroutines behind.
package leaktest

import (
	"runtime"
	"time"
)

const (
	settleTimeout = 500 * time.Millisecond
	pollInterval  = 10 * time.Millisecond
)

// TB is the part of testing.TB the checker reports through
type TB interface {
	Helper()
	Errorf(format string, args ...any)
}

// GoroutineChecker compares the goroutine count against a baseline
type GoroutineChecker struct {
	t       TB
	before  int
	timeout time.Duration
}

// NewGoroutineChecker records the current goroutine count as the baseline
func NewGoroutineChecker(t TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{t: t, before: runtime.NumGoroutine(), timeout: settleTimeout}
}

// Check waits for the count to fall back within tolerance of the baseline
// and fails the test if it does not before the settle timeout.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	after, ok := settle(g.before+tolerance, g.timeout)
	if !ok {
		g.t.Errorf("goroutine leak: before=%d after=%d leaked=%d tolerance=%d",
			g.before, after, after-g.before, tolerance)
	}
}

// settle polls until at most target goroutines run or timeout elapses
func settle(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(pollInterval)
	}
}
