package model

const (
	// DefaultFormat renders elapsed time as hours, minutes and seconds.
	DefaultFormat = "HH:mm:ss"
	// DefaultIntervalMillis is the tick period used when none is configured.
	DefaultIntervalMillis = 1000
)

// StopWatchConfig contains runtime settings for the StopWatch state machine.
type StopWatchConfig struct {
	// Format is a custom date/time format specifier applied to epoch plus elapsed time.
	Format string
	// IntervalMillis is the tick period. It is applied to the scheduler only
	// the first time the scheduler is programmed.
	IntervalMillis int
}

// DefaultStopWatchConfig returns the configuration of a freshly created stopwatch.
func DefaultStopWatchConfig() StopWatchConfig {
	return StopWatchConfig{
		Format:         DefaultFormat,
		IntervalMillis: DefaultIntervalMillis,
	}
}

// WithDefaults fills unset fields with their default values.
func (config StopWatchConfig) WithDefaults() StopWatchConfig {
	if config.Format == "" {
		config.Format = DefaultFormat
	}
	if config.IntervalMillis <= 0 {
		config.IntervalMillis = DefaultIntervalMillis
	}
	return config
}
