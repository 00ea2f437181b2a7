//go:build impulsedebug

package impulse

import "log"

// debugChecks is true in builds made with -tags impulsedebug.
const debugChecks = true

// assertf panics with a formatted message when cond is false.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		log.Panicf("impulse: "+format, args...)
	}
}
