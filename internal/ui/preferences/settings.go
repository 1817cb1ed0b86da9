package preferences

import (
	"stopwatch/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Format         string
	IntervalMillis int
}

// DefaultSettings returns default settings for the stopwatch.
func DefaultSettings() Settings {
	defaults := model.DefaultStopWatchConfig()
	return Settings{
		Format:         defaults.Format,
		IntervalMillis: defaults.IntervalMillis,
	}
}

// StopWatchConfig converts settings to StopWatchConfig.
func (settings Settings) StopWatchConfig() model.StopWatchConfig {
	return model.StopWatchConfig{
		Format:         settings.Format,
		IntervalMillis: settings.IntervalMillis,
	}.WithDefaults()
}
