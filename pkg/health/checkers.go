package health

import (
	"context"
	"fmt"
	"runtime"
)

// GoroutineCountCheck returns a check that fails when the process runs more
// than max goroutines, a cheap proxy for leaks.
func GoroutineCountCheck(max int) CheckFunc {
	return func(context.Context) error {
		if n := runtime.NumGoroutine(); n > max {
			return fmt.Errorf("too many goroutines: %d > %d", n, max)
		}
		return nil
	}
}
