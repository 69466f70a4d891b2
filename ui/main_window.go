package ui

import (
	"fmt"
	"mypanel/launcher"
	"mypanel/models"
	"mypanel/panel"
	"mypanel/storage"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
)

// Version is shown in the window header
const Version = "1.6"

// slotRow is the button and name box of one slot
type slotRow struct {
	button  *widget.Button
	nameBox *NameBox
}

// MainWindow represents the panel window
type MainWindow struct {
	app        fyne.App
	window     fyne.Window
	storage    *storage.Manager
	controller *panel.Controller
	rows       [models.SlotCount]slotRow
	busy       sync.Mutex // One dialog flow at a time
	logger     *log.Logger
}

// NewMainWindow creates the panel window with the default config location
func NewMainWindow() *MainWindow {
	myApp := app.NewWithID("io.mypanel")
	myApp.SetIcon(theme.GridIcon())
	return newMainWindow(myApp, storage.NewManager(), launcher.NewManager())
}

func newMainWindow(a fyne.App, store *storage.Manager, l panel.Launcher) *MainWindow {
	window := a.NewWindow("myPanel")
	window.Resize(fyne.NewSize(350, 450))
	window.SetFixedSize(true)

	mw := &MainWindow{
		app:     a,
		window:  window,
		storage: store,
		logger:  log.WithPrefix("ui"),
	}
	mw.controller = panel.New(store, l, mw)
	mw.controller.OnChange = mw.refreshSlots

	mw.setupUI()
	mw.controller.Load()
	mw.applyTheme(store.Preferences())

	return mw
}

// ShowAndRun shows the window and runs the application
func (mw *MainWindow) ShowAndRun() {
	mw.window.ShowAndRun()
}

// setupUI builds the header, the slot rows and the footer
func (mw *MainWindow) setupUI() {
	rows := container.NewVBox()
	for i := range mw.rows {
		index := i
		button := widget.NewButton(models.LabelSelect, func() {
			mw.onSlotTapped(index)
		})
		button.Importance = widget.HighImportance
		nameBox := NewNameBox(models.PlaceholderName)

		mw.rows[i] = slotRow{button: button, nameBox: nameBox}
		rows.Add(container.NewBorder(nil, nil, container.NewGridWrap(fyne.NewSize(80, 40), button), nil, nameBox))
	}

	footer := widget.NewLabel(mw.storage.Path())
	footer.Truncation = fyne.TextTruncateEllipsis
	footer.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewBorder(mw.createHeader(), footer, nil, nil, container.NewVScroll(rows))
	mw.window.SetContent(container.NewPadded(content))
}

// createHeader creates the reset button, title and version caption
func (mw *MainWindow) createHeader() fyne.CanvasObject {
	resetBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		go mw.runExclusive(func() {
			mw.controller.Reset()
		})
	})
	resetBtn.Importance = widget.LowImportance

	title := widget.NewLabelWithStyle("myPanel", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	version := widget.NewLabelWithStyle(fmt.Sprintf("v %s", Version), fyne.TextAlignTrailing, fyne.TextStyle{})

	return container.NewHBox(resetBtn, layout.NewSpacer(), title, layout.NewSpacer(), version)
}

// onSlotTapped runs the slot's click flow off the event callback so modal
// dialogs can block until they are answered.
func (mw *MainWindow) onSlotTapped(index int) {
	go mw.runExclusive(func() {
		mw.controller.HandleSlotClick(index)
	})
}

// runExclusive drops the action when another dialog flow is running
func (mw *MainWindow) runExclusive(action func()) {
	if !mw.busy.TryLock() {
		mw.logger.Debug("Ignoring click while a dialog is open")
		return
	}
	defer mw.busy.Unlock()
	action()
}

// refreshSlots redraws every row from the controller state
func (mw *MainWindow) refreshSlots(slots models.Slots) {
	for i, slot := range slots {
		row := mw.rows[i]
		row.button.SetText(slot.Label())
		row.nameBox.SetText(slot.DisplayName(), !slot.Assigned())
	}
}

// applyTheme picks the Fyne theme named in the preferences
func (mw *MainWindow) applyTheme(prefs models.Preferences) {
	switch prefs.Theme {
	case "dark":
		mw.app.Settings().SetTheme(theme.DarkTheme())
	case "light":
		mw.app.Settings().SetTheme(theme.LightTheme())
	}
}
