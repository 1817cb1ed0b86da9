package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stopwatch/internal/logging"
	"stopwatch/internal/storage"
	"stopwatch/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (Options, error) {
	t.Helper()
	var got Options
	cmd := NewRootCommand(func(options Options) error {
		got = options
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	return got, err
}

func writeSettings(t *testing.T, settings preferences.Settings) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, storage.SaveSettingsFile(path, settings))
	return path
}

func TestRootUsesSettingsFile(t *testing.T) {
	path := writeSettings(t, preferences.Settings{Format: "mm:ss", IntervalMillis: 500})

	options, err := runRoot(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, preferences.Settings{Format: "mm:ss", IntervalMillis: 500}, options.Settings)
	assert.Equal(t, path, options.ConfigPath)
	require.NotNil(t, options.Logger)
}

func TestRootFlagsOverrideSettingsFile(t *testing.T) {
	path := writeSettings(t, preferences.Settings{Format: "mm:ss", IntervalMillis: 500})

	options, err := runRoot(t, "--config", path, "--format", "HH:mm:ss.ff", "--interval", "10")
	require.NoError(t, err)
	assert.Equal(t, preferences.Settings{Format: "HH:mm:ss.ff", IntervalMillis: 10}, options.Settings)
}

func TestRootEnvironmentOverridesSettingsFile(t *testing.T) {
	path := writeSettings(t, preferences.Settings{Format: "mm:ss", IntervalMillis: 500})
	t.Setenv("STOPWATCH_INTERVAL", "20")

	options, err := runRoot(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, 20, options.Settings.IntervalMillis)
	assert.Equal(t, "mm:ss", options.Settings.Format)
}

func TestRootRejectsInvalidOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	tests := map[string][]string{
		"format":    {"--config", path, "--format", "'open"},
		"interval":  {"--config", path, "--interval", "0"},
		"verbosity": {"--config", path, "--verbosity", "chatty"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := runRoot(t, args...)
			require.Error(t, err)
		})
	}
}

func TestRootWithoutGUI(t *testing.T) {
	cmd := NewRootCommand(nil)
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "settings.yaml")})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--headless")
}

func TestRootHeadless(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand(nil)
	cmd.SetArgs([]string{
		"--config", filepath.Join(t.TempDir(), "settings.yaml"),
		"--headless", "--duration", "80ms", "--interval", "10", "--format", "ss.fff", "--verbosity", "silent",
	})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "stopped after 00."), lines[len(lines)-1])
	assert.Regexp(t, `^\d{2}\.\d{3}$`, lines[0])
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	options := Options{Settings: preferences.DefaultSettings(), Logger: logging.Discard()}
	require.NoError(t, RunHeadless(ctx, &out, options, time.Hour))
	assert.Equal(t, "stopped after 00:00:00\n", out.String())
}

func TestOptionsSaveSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	options := Options{ConfigPath: path}
	want := preferences.Settings{Format: "s", IntervalMillis: 5}

	require.NoError(t, options.SaveSettings(want))
	got, err := storage.LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
