package client

// Logger is an optional package logger. The transcript pipeline reports
// recoverable conditions (fallback tracks, key resolution failures,
// retries) through it and never writes to ambient global state.
type Logger interface {
	// Debugf logs a formatted debug message.
	Debugf(format string, args ...any)
	// Infof logs a formatted informational message.
	Infof(format string, args ...any)
	// Warnf logs a formatted warning message.
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
