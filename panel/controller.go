// Package panel holds the slot state of the launcher and drives the
// select, open and reset flows through its collaborators.
package panel

import (
	"errors"
	"fmt"
	"mypanel/launcher"
	"mypanel/models"
	"mypanel/storage"
	"path/filepath"

	"github.com/charmbracelet/log"
)

var (
	// ErrInvalidSelection is returned when a picked path is not a file or bundle
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrEmptySlot is returned when opening a slot with no path
	ErrEmptySlot = errors.New("slot is empty")

	// ErrSlotOutOfRange is returned for indices outside 0..SlotCount-1
	ErrSlotOutOfRange = errors.New("slot index out of range")
)

// Store persists slot state
type Store interface {
	Load() (models.Slots, error)
	Save(slots models.Slots) error
	Reset() error
}

// Launcher validates and opens slot targets
type Launcher interface {
	Validate(path string) error
	IsBundle(path string) bool
	Open(path string) error
	LaunchApp(path string) error
}

// Dialogs is the modal UI the controller talks to. PickFile returns an
// empty path when the user cancels.
type Dialogs interface {
	PickFile(title, startDir string) (string, error)
	Confirm(title, message string) bool
	Warn(title, message string)
	ShowError(title string, err error)
	Info(title, message string)
}

// Controller owns the in-memory slots
type Controller struct {
	store    Store
	launcher Launcher
	dialogs  Dialogs
	slots    models.Slots
	lastDir  string
	logger   *log.Logger

	// OnChange is called after the slots change
	OnChange func(models.Slots)
}

// New creates a controller with empty slots
func New(store Store, launcher Launcher, dialogs Dialogs) *Controller {
	return &Controller{
		store:    store,
		launcher: launcher,
		dialogs:  dialogs,
		logger:   log.WithPrefix("panel"),
	}
}

// Load reads the slots from the store. Read failures are logged and leave
// every slot unassigned.
func (c *Controller) Load() {
	slots, err := c.store.Load()
	if err != nil {
		c.logger.Error("Failed to load config", "error", err)
	}
	c.slots = slots
	c.changed()
}

// Slots returns a copy of the current slots
func (c *Controller) Slots() models.Slots {
	return c.slots
}

// Slot returns the slot at index i
func (c *Controller) Slot(i int) (models.Slot, error) {
	if err := checkIndex(i); err != nil {
		return models.Slot{}, err
	}
	return c.slots[i], nil
}

// HandleSlotClick selects a file for an unassigned slot and opens an
// assigned one.
func (c *Controller) HandleSlotClick(i int) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	if c.slots[i].Assigned() {
		return c.OpenSlot(i)
	}
	return c.SelectSlot(i)
}

// SelectSlot asks the user for a file and assigns it to slot i
func (c *Controller) SelectSlot(i int) error {
	if err := checkIndex(i); err != nil {
		return err
	}

	picked, err := c.dialogs.PickFile(fmt.Sprintf("Select file %d", i+1), c.lastDir)
	if err != nil {
		c.logger.Error("File dialog failed", "slot", i+1, "error", err)
		c.dialogs.ShowError("Select failed", err)
		return err
	}
	if picked == "" {
		c.logger.Debug("Selection cancelled", "slot", i+1)
		return nil
	}

	path := launcher.CleanPath(picked)
	if err := c.launcher.Validate(path); err != nil {
		c.logger.Warn("Rejected selection", "slot", i+1, "path", path, "error", err)
		c.dialogs.Warn("Invalid selection", "The selected path is not a valid file or application.")
		return fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}

	c.slots[i].Path = path
	c.lastDir = filepath.Dir(path)
	c.logger.Info("Slot assigned", "slot", i+1, "path", path)
	c.changed()

	if err := c.store.Save(c.slots); err != nil {
		// The slot stays assigned in memory; the next successful save persists it.
		c.logger.Error("Failed to save config", "error", err)
	}
	return nil
}

// OpenSlot opens the target of slot i, launching bundles as applications
func (c *Controller) OpenSlot(i int) error {
	if err := checkIndex(i); err != nil {
		return err
	}

	slot := c.slots[i]
	if !slot.Assigned() {
		c.dialogs.Warn("Warning", "No valid file or application selected.")
		return fmt.Errorf("slot %d: %w", i+1, ErrEmptySlot)
	}

	if err := c.launcher.Validate(slot.Path); err != nil {
		err = fmt.Errorf("%w: %w", launcher.ErrLaunchFailed, err)
		c.logger.Error("Slot target is gone", "slot", i+1, "path", slot.Path, "error", err)
		c.dialogs.ShowError("File not found", err)
		return err
	}

	var err error
	if c.launcher.IsBundle(slot.Path) {
		err = c.launcher.LaunchApp(slot.Path)
	} else {
		err = c.launcher.Open(slot.Path)
	}
	if err != nil {
		c.logger.Error("Open failed", "slot", i+1, "path", slot.Path, "error", err)
		c.dialogs.ShowError("Open failed", err)
		return err
	}

	c.logger.Info("Opened slot", "slot", i+1, "path", slot.Path)
	return nil
}

// Reset clears every slot and deletes the config after the user confirms.
// It reports whether the reset ran.
func (c *Controller) Reset() (bool, error) {
	if !c.dialogs.Confirm("Reset", "This clears all slots and deletes the configuration. Continue?") {
		return false, nil
	}

	c.slots = models.Slots{}
	c.lastDir = ""
	c.changed()

	if err := c.store.Reset(); err != nil {
		c.logger.Error("Failed to reset config", "error", err)
		c.dialogs.ShowError("Reset failed", err)
		return true, err
	}

	c.logger.Info("Panel reset")
	c.dialogs.Info("Reset complete", "All slots have been cleared.")
	return true, nil
}

func (c *Controller) changed() {
	if c.OnChange != nil {
		c.OnChange(c.slots)
	}
}

func checkIndex(i int) error {
	if i < 0 || i >= models.SlotCount {
		return fmt.Errorf("%w: %d", ErrSlotOutOfRange, i)
	}
	return nil
}

// Compile-time check that the storage manager satisfies Store
var _ Store = (*storage.Manager)(nil)

// Compile-time check that the launcher manager satisfies Launcher
var _ Launcher = (*launcher.Manager)(nil)
