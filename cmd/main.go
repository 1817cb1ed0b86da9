package main

import (
	"errors"
	"fmt"
	"os"

	"stopwatch/internal/cli"
	"stopwatch/internal/core/stopwatch"
	"stopwatch/internal/platform"
	"stopwatch/internal/ui/display"
	"stopwatch/internal/ui/preferences"
	"stopwatch/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

func main() {
	if err := cli.NewRootCommand(runGUI).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runGUI(options cli.Options) error {
	logger := options.Logger

	guard, err := platform.AcquireSingleInstance(cli.AppName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Infof("single instance: %v", err)
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.stopwatch.app")
	fyneApp.SetIcon(theme.HistoryIcon())

	settings := options.Settings
	watch := stopwatch.New(settings.StopWatchConfig(), stopwatch.Options{Logger: logger})
	events := watch.Subscribe(16)

	var mainWindow *display.Window
	var prefsWindow *preferences.Window
	quit := func() {
		watch.Dispose()
		fyneApp.Quit()
	}

	mainWindow = display.New(fyneApp, watch, watch.Text(), display.Callbacks{
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnClose: quit,
		OnError: func(err error) {
			logger.Warningf("stopwatch: %v", err)
		},
	})

	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := watch.SetFormat(updated.Format); err != nil {
			logger.Warningf("preferences: %v", err)
		}
		if err := watch.SetInterval(updated.IntervalMillis); err != nil {
			logger.Warningf("preferences: %v", err)
		}
		settings = updated
		if err := options.SaveSettings(settings); err != nil {
			logger.Errorf("save settings: %v", err)
			dialog.ShowError(err, mainWindow.FyneWindow())
		}
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        mainWindow.Show,
			OnStart:       func() { mainWindow.Report(watch.Start()) },
			OnPause:       func() { mainWindow.Report(watch.Pause()) },
			OnStop:        func() { mainWindow.Report(watch.Stop()) },
			OnPreferences: prefsWindow.Show,
			OnQuit:        quit,
		})
		desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
	} else {
		logger.Debugf("system tray unsupported on this platform")
	}

	guard.OnActivate(func() {
		fyne.Do(mainWindow.Show)
	})

	go func() {
		for event := range events {
			fyne.Do(func() {
				mainWindow.Render(event)
				if trayManager != nil {
					trayManager.Render(event)
				}
			})
		}
	}()

	logger.Infof("stopwatch ready, format %q, interval %d ms", watch.Format(), watch.Interval())
	mainWindow.ShowAndRun()
	watch.Dispose()
	return nil
}
