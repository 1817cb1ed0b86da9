package tray

import (
	"fmt"

	"stopwatch/internal/core/stopwatch"

	"fyne.io/fyne/v2"
)

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStart       func()
	OnPause       func()
	OnStop        func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host       Host
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	stopItem   *fyne.MenuItem
	menu       *fyne.Menu
	state      stopwatch.State
	text       string
}

// New creates a tray manager with the provided callbacks.
func New(host Host, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		callbacks: callbacks,
		state:     stopwatch.StateStopped,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.startItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnStart))
	manager.pauseItem = fyne.NewMenuItem("Pause", invoke(&manager.callbacks.OnPause))
	manager.stopItem = fyne.NewMenuItem("Stop", invoke(&manager.callbacks.OnStop))

	manager.menu = fyne.NewMenu("StopWatch",
		manager.statusItem,
		fyne.NewMenuItem("Show", invoke(&manager.callbacks.OnShow)),
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)

	manager.refreshItems()
	return manager
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// Render applies a stopwatch event to the status line and item states.
func (manager *Manager) Render(event stopwatch.Event) {
	if event.Text != "" {
		manager.text = event.Text
	}
	if event.State != "" {
		manager.state = event.State
	}
	manager.refreshItems()
}

func (manager *Manager) refreshItems() {
	status := manager.text
	if status == "" {
		status = "--:--:--"
	}
	manager.statusItem.Label = fmt.Sprintf("%s (%s)", status, manager.state)

	manager.startItem.Disabled = manager.state == stopwatch.StateStarted
	manager.pauseItem.Disabled = manager.state != stopwatch.StateStarted
	manager.stopItem.Disabled = manager.state == stopwatch.StateStopped
	if manager.state == stopwatch.StatePaused {
		manager.startItem.Label = "Resume"
	} else {
		manager.startItem.Label = "Start"
	}

	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
