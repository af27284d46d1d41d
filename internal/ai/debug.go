package ai

import "sync/atomic"

// debugLoggingEnabled gates per-tick slog.Debug calls so the hot path
// does not pay for log-level checks. Set once at startup from config.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables AI debug logging.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled reports whether AI debug logging is on. Guard
// expensive debug log calls with it:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("tick", "state", state)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
