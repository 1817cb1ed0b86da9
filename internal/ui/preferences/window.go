package preferences

import (
	"strconv"

	"stopwatch/internal/core/timefmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)
	format   *widget.Entry
	interval *widget.Entry
	preview  *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("StopWatch Settings")

	format := widget.NewEntry()
	interval := widget.NewEntry()
	preview := widget.NewLabel("")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Display", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Format"), format),
		container.NewHBox(widget.NewLabel("Preview"), preview),
		container.NewHBox(widget.NewLabel("Tick every"), interval, widget.NewLabel("ms")),
		widget.NewLabel("Interval changes apply once the ticker is reprogrammed."),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(360, 220))

	prefs := &Window{
		window:   window,
		onSave:   onSave,
		format:   format,
		interval: interval,
		preview:  preview,
	}
	prefs.UpdateSettings(settings)

	format.OnChanged = prefs.updatePreview
	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.format.SetText(settings.Format)
	prefs.interval.SetText(strconv.Itoa(settings.IntervalMillis))
	prefs.updatePreview(settings.Format)
}

func (prefs *Window) updatePreview(format string) {
	text, err := timefmt.FormatElapsed(0, format)
	if err != nil {
		prefs.preview.SetText("invalid format")
		return
	}
	prefs.preview.SetText(text)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if _, err := timefmt.Parse(prefs.format.Text); err == nil && prefs.format.Text != "" {
		settings.Format = prefs.format.Text
	}
	if millis, ok := parsePositiveInt(prefs.interval.Text); ok {
		settings.IntervalMillis = millis
	}

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
