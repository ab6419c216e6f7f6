package testutil

import (
	"sync"
	"testing"
	"time"
)

// SlowThreshold is the duration after which FindSlow suggests marking a test slow.
var SlowThreshold = time.Second

var slowTests sync.Map

// SlowTest marks t as known-slow. Slow tests are skipped under -short.
func SlowTest(t testing.TB) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping slow test in short mode")
	}
	slowTests.Store(t.Name(), struct{}{})
}

// FindSlow times t and logs a hint when it runs longer than SlowThreshold
// without having been marked with SlowTest.
func FindSlow(t testing.TB) {
	t.Helper()
	start := time.Now()
	t.Cleanup(func() {
		elapsed := time.Since(start)
		if elapsed <= SlowThreshold {
			return
		}
		if _, marked := slowTests.Load(t.Name()); marked {
			return
		}
		t.Logf("please consider marking test [%s] with testutil.SlowTest (took %s)", t.Name(), elapsed.Round(time.Millisecond))
	})
}

// IsMarkedSlow reports whether SlowTest was called for the named test.
func IsMarkedSlow(name string) bool {
	_, ok := slowTests.Load(name)
	return ok
}
