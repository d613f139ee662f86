package dispatcher

// Config holds dispatcher configuration options.
type Config struct {
	// EnableMetrics enables dispatch timing and statistics collection.
	EnableMetrics bool

	// RecoverFromPanic wraps each handler call in panic recovery.
	// A panicking handler is treated as Declined.
	RecoverFromPanic bool

	// ReportUnknown sets the "Not an editor command" status when no
	// handler accepts a line.
	ReportUnknown bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableMetrics:    false,
		RecoverFromPanic: true,
		ReportUnknown:    true,
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithReportUnknown returns a copy of the config with unknown-command
// reporting set.
func (c Config) WithReportUnknown(report bool) Config {
	c.ReportUnknown = report
	return c
}
