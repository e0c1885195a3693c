package proxypool

// Logger receives pool housekeeping messages (skipped lines, failovers,
// reactivations). The zero value of the package is silent.
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
