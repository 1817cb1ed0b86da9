// Package cli builds the stopwatch command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"stopwatch/internal/core/model"
	"stopwatch/internal/core/stopwatch"
	"stopwatch/internal/core/timefmt"
	"stopwatch/internal/logging"
	"stopwatch/internal/storage"
	"stopwatch/internal/ui/preferences"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	optionNameFormat    = "format"
	optionNameInterval  = "interval"
	optionNameVerbosity = "verbosity"
	optionNameConfig    = "config"
	optionNameHeadless  = "headless"
	optionNameDuration  = "duration"
)

const envPrefix = "STOPWATCH"

// AppName names the config directory and the single-instance lock.
const AppName = "StopWatch"

// Options is the resolved configuration handed to the GUI runner.
type Options struct {
	Settings   preferences.Settings
	ConfigPath string
	Logger     logging.Logger
}

// SaveSettings persists settings to the resolved config path.
func (options Options) SaveSettings(settings preferences.Settings) error {
	return storage.SaveSettingsFile(options.ConfigPath, settings)
}

// GUIFunc runs the graphical application.
type GUIFunc func(options Options) error

// NewRootCommand creates the root command. gui runs unless --headless is set.
func NewRootCommand(gui GUIFunc) *cobra.Command {
	config := viper.New()

	cmd := &cobra.Command{
		Use:           "stopwatch",
		Short:         "Stopwatch with start, pause and stop",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			options, err := resolveOptions(cmd, config)
			if err != nil {
				return err
			}
			if config.GetBool(optionNameHeadless) {
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				return RunHeadless(ctx, cmd.OutOrStdout(), options, config.GetDuration(optionNameDuration))
			}
			if gui == nil {
				return errors.New("no graphical runner available, use --headless")
			}
			return gui(options)
		},
	}

	config.SetEnvPrefix(envPrefix)
	config.AutomaticEnv()
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	cmd.Flags().String(optionNameFormat, model.DefaultFormat, "display format, e.g. HH:mm:ss or mm:ss.fff")
	cmd.Flags().Int(optionNameInterval, model.DefaultIntervalMillis, "tick interval in milliseconds")
	cmd.Flags().String(optionNameVerbosity, "info", "log verbosity level 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace")
	cmd.Flags().String(optionNameConfig, "", "settings file (default is settings.yaml in the user config dir)")
	cmd.Flags().Bool(optionNameHeadless, false, "run without a window and print the display to stdout")
	cmd.Flags().Duration(optionNameDuration, 0, "stop a headless run after this long (0 runs until interrupted)")

	return cmd
}

func resolveOptions(cmd *cobra.Command, config *viper.Viper) (Options, error) {
	logger, err := logging.NewFromVerbosity(cmd.ErrOrStderr(), config.GetString(optionNameVerbosity))
	if err != nil {
		return Options{}, err
	}

	configPath := config.GetString(optionNameConfig)
	if configPath == "" {
		configPath, err = storage.ResolveConfigPath(AppName)
		if err != nil {
			return Options{}, err
		}
	}

	settings, err := storage.LoadSettingsFile(configPath)
	if err != nil {
		logger.Warningf("settings: %v, using defaults", err)
	}

	if explicitlySet(cmd, optionNameFormat) {
		format := config.GetString(optionNameFormat)
		if _, err := timefmt.Parse(format); err != nil {
			return Options{}, fmt.Errorf("--%s: %w", optionNameFormat, err)
		}
		settings.Format = format
	}
	if explicitlySet(cmd, optionNameInterval) {
		interval := config.GetInt(optionNameInterval)
		if interval <= 0 {
			return Options{}, fmt.Errorf("--%s: must be positive, got %d", optionNameInterval, interval)
		}
		settings.IntervalMillis = interval
	}

	logger.WithField("config", configPath).Debugf("format %q interval %d ms", settings.Format, settings.IntervalMillis)
	return Options{Settings: settings, ConfigPath: configPath, Logger: logger}, nil
}

// explicitlySet reports whether name was given on the command line or
// through the environment, as opposed to being a flag default.
func explicitlySet(cmd *cobra.Command, name string) bool {
	if cmd.Flags().Changed(name) {
		return true
	}
	_, ok := os.LookupEnv(envName(name))
	return ok
}

func envName(name string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// RunHeadless starts a stopwatch, writes every display update to w and stops
// it when ctx is done or after duration, if positive.
func RunHeadless(ctx context.Context, w io.Writer, options Options, duration time.Duration) error {
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	watch := stopwatch.New(options.Settings.StopWatchConfig(), stopwatch.Options{Logger: options.Logger})
	defer watch.Dispose()

	events := watch.Subscribe(16)
	if err := watch.Start(); err != nil {
		return err
	}
	options.Logger.Infof("stopwatch started, format %q, interval %d ms", watch.Format(), watch.Interval())

	for {
		select {
		case <-ctx.Done():
			final, err := timefmt.FormatElapsed(watch.Elapsed(), watch.Format())
			if err != nil {
				return err
			}
			if err := watch.Stop(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "stopped after %s\n", final)
			return err
		case event := <-events:
			if event.Type != stopwatch.EventDisplay {
				continue
			}
			if _, err := fmt.Fprintln(w, event.Text); err != nil {
				return err
			}
		}
	}
}
