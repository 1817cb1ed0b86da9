package preferences

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsStopWatchConfig(t *testing.T) {
	config := Settings{}.StopWatchConfig()
	assert.Equal(t, "HH:mm:ss", config.Format)
	assert.Equal(t, 1000, config.IntervalMillis)

	config = Settings{Format: "mm:ss", IntervalMillis: 50}.StopWatchConfig()
	assert.Equal(t, "mm:ss", config.Format)
	assert.Equal(t, 50, config.IntervalMillis)
}

func TestWindowSave(t *testing.T) {
	app := test.NewTempApp(t)

	var saved []Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = append(saved, settings)
	})
	assert.Equal(t, "00:00:00", prefs.preview.Text)

	prefs.format.SetText("HH:mm:ss.fff")
	prefs.updatePreview(prefs.format.Text)
	assert.Equal(t, "00:00:00.000", prefs.preview.Text)
	prefs.interval.SetText("250")
	prefs.handleSave()

	require.Len(t, saved, 1)
	assert.Equal(t, Settings{Format: "HH:mm:ss.fff", IntervalMillis: 250}, saved[0])
	assert.Equal(t, saved[0], prefs.Settings())
}

func TestWindowSaveKeepsPreviousOnInvalidInput(t *testing.T) {
	app := test.NewTempApp(t)

	var saved Settings
	prefs := New(app, Settings{Format: "mm:ss", IntervalMillis: 500}, func(settings Settings) {
		saved = settings
	})

	prefs.format.SetText("'unterminated")
	prefs.updatePreview(prefs.format.Text)
	assert.Equal(t, "invalid format", prefs.preview.Text)
	prefs.interval.SetText("-3")
	prefs.handleSave()

	assert.Equal(t, Settings{Format: "mm:ss", IntervalMillis: 500}, saved)
	assert.Equal(t, "mm:ss", prefs.format.Text)
	assert.Equal(t, "500", prefs.interval.Text)
}

func TestParsePositiveInt(t *testing.T) {
	value, ok := parsePositiveInt("15")
	assert.True(t, ok)
	assert.Equal(t, 15, value)

	for _, input := range []string{"", "0", "-1", "abc"} {
		_, ok := parsePositiveInt(input)
		assert.False(t, ok, input)
	}
}
