//go:build !impulsedebug

package impulse

// debugChecks is true in builds made with -tags impulsedebug.
const debugChecks = false

func assertf(bool, string, ...any) {}
