package cellterm

import "log/slog"

// Logger is the library's diagnostic output sink. cellterm never writes to
// stdout/stderr directly (it owns the terminal), so every Debug/Warn call
// in this package goes through Logger instead. It defaults to slog.Default
// and is safe to reassign once, before Init, via SetLogger.
var Logger = slog.Default()

// SetLogger overrides the package-level logger an embedding application
// uses for cellterm's own diagnostics (failed clipboard writes, focus
// fallbacks, failed renders; the parser does not log). Passing nil
// restores slog.Default().
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	Logger = l
}
