package display

import (
	"image/color"
	"strings"

	"stopwatch/internal/core/stopwatch"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Controls is the part of the stopwatch the window drives.
type Controls interface {
	Start() error
	Pause() error
	Stop() error
}

// Callbacks defines window action handlers.
type Callbacks struct {
	OnPreferences func()
	OnClose       func()
	OnError       func(error)
}

// Window shows the elapsed time with start, pause and stop buttons.
type Window struct {
	window      fyne.Window
	controls    Controls
	callbacks   Callbacks
	timerLabel  *canvas.Text
	stateLabel  *widget.Label
	startButton *widget.Button
	pauseButton *widget.Button
	stopButton  *widget.Button
}

const timerTextSize = 48

// New creates the main window in the stopped layout.
func New(app fyne.App, controls Controls, initialText string, callbacks Callbacks) *Window {
	window := app.NewWindow("StopWatch")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	timerLabel := canvas.NewText(initialText, color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = timerTextSize

	stateLabel := widget.NewLabel("")
	stateLabel.Alignment = fyne.TextAlignCenter

	view := &Window{
		window:     window,
		controls:   controls,
		callbacks:  callbacks,
		timerLabel: timerLabel,
		stateLabel: stateLabel,
	}

	view.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		view.Report(view.controls.Start())
	})
	view.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() {
		view.Report(view.controls.Pause())
	})
	view.stopButton = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() {
		view.Report(view.controls.Stop())
	})
	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if view.callbacks.OnPreferences != nil {
			view.callbacks.OnPreferences()
		}
	})

	buttons := container.NewHBox(view.startButton, view.pauseButton, view.stopButton, settingsButton)
	content := container.NewVBox(timerLabel, stateLabel, container.NewCenter(buttons))
	window.SetContent(container.NewPadded(content))
	window.SetCloseIntercept(func() {
		if view.callbacks.OnClose != nil {
			view.callbacks.OnClose()
			return
		}
		window.Close()
	})

	view.Render(stopwatch.Event{State: stopwatch.StateStopped, Text: initialText})
	return view
}

// Render applies an event to the widgets. It must run on the fyne main goroutine.
func (view *Window) Render(event stopwatch.Event) {
	if event.Text != "" {
		view.timerLabel.Text = event.Text
		view.timerLabel.Refresh()
	}
	view.stateLabel.SetText(stateTitle(event.State))
	setEnabled(view.startButton, event.State != stopwatch.StateStarted)
	setEnabled(view.pauseButton, event.State == stopwatch.StateStarted)
	setEnabled(view.stopButton, event.State != stopwatch.StateStopped)
	if event.State == stopwatch.StatePaused {
		view.startButton.SetText("Resume")
	} else {
		view.startButton.SetText("Start")
	}
}

// Text returns the displayed elapsed time.
func (view *Window) Text() string {
	return view.timerLabel.Text
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Hide hides the window without closing it.
func (view *Window) Hide() {
	view.window.Hide()
}

// FyneWindow returns the underlying window, e.g. as a dialog parent.
func (view *Window) FyneWindow() fyne.Window {
	return view.window
}

// ShowAndRun displays the window and runs the application loop.
func (view *Window) ShowAndRun() {
	view.window.ShowAndRun()
}

// Report passes a failed action to the OnError callback.
func (view *Window) Report(err error) {
	if err != nil && view.callbacks.OnError != nil {
		view.callbacks.OnError(err)
	}
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
	} else {
		button.Disable()
	}
}

func stateTitle(state stopwatch.State) string {
	if state == "" {
		return ""
	}
	return strings.ToUpper(string(state[:1])) + string(state[1:])
}
