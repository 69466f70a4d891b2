package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"mypanel/launcher"
	"mypanel/models"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var (
	// ErrConfigUnreadable means the config file exists but could not be read or parsed
	ErrConfigUnreadable = errors.New("config unreadable")

	// ErrConfigWriteFailed means the config file could not be written
	ErrConfigWriteFailed = errors.New("config write failed")
)

// Manager handles config persistence
type Manager struct {
	path        string
	validate    func(path string) bool
	preferences models.Preferences
	windowState models.WindowState
	logger      *log.Logger
}

// NewManager creates a storage manager at the default config location
func NewManager() *Manager {
	return NewManagerAt(defaultConfigPath())
}

// NewManagerAt creates a storage manager for an explicit config file
func NewManagerAt(path string) *Manager {
	return &Manager{
		path:        path,
		validate:    launcher.NewManager().IsLaunchable,
		preferences: models.DefaultPreferences(),
		windowState: models.DefaultWindowState(),
		logger:      log.WithPrefix("storage"),
	}
}

// Path returns the config file location
func (m *Manager) Path() string {
	return m.path
}

// Preferences returns the preferences that the next Save will write
func (m *Manager) Preferences() models.Preferences {
	return m.preferences
}

// WindowState returns the window geometry that the next Save will write
func (m *Manager) WindowState() models.WindowState {
	return m.windowState
}

// Load reads the config file into slots. A missing file yields empty slots
// and no error; an unreadable one yields empty slots and ErrConfigUnreadable.
// Paths that no longer validate are dropped.
func (m *Manager) Load() (models.Slots, error) {
	var slots models.Slots

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Debug("Config file does not exist", "path", m.path)
			return slots, nil
		}
		return slots, fmt.Errorf("%w: %s: %w", ErrConfigUnreadable, m.path, err)
	}

	paths, format, ok := parsePaths(data)
	if !ok {
		return slots, fmt.Errorf("%w: %s: no known config format", ErrConfigUnreadable, m.path)
	}
	m.logger.Info("Loading config", "path", m.path, "format", format)

	if format == "current" {
		m.loadMetadata(data)
	}

	for i, path := range models.FromPaths(paths).Paths() {
		if path == "" {
			continue
		}
		if !m.validate(path) {
			m.logger.Warn("Dropping missing or invalid path", "slot", i+1, "path", path)
			continue
		}
		slots[i].Path = path
		m.logger.Debug("Loaded slot", "slot", i+1, "path", path)
	}

	return slots, nil
}

// loadMetadata keeps preferences and window state from a current-format file
func (m *Manager) loadMetadata(data []byte) {
	var meta struct {
		Preferences *models.Preferences `json:"preferences"`
		WindowState *models.WindowState `json:"windowState"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		m.logger.Warn("Ignoring malformed config metadata", "error", err)
		return
	}
	if meta.Preferences != nil {
		m.preferences = *meta.Preferences
	}
	if meta.WindowState != nil {
		m.windowState = *meta.WindowState
	}
}

// Save writes slots in the current format, replacing the config file
func (m *Manager) Save(slots models.Slots) error {
	doc := models.Document{
		LastOpenedFiles:   slots.Paths(),
		Preferences:       m.preferences,
		WindowState:       m.windowState,
		LastModifiedTimes: m.modifiedTimes(slots),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfigWriteFailed, err)
	}

	if err := writeFileAtomic(m.path, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrConfigWriteFailed, m.path, err)
	}

	m.logger.Info("Config saved", "path", m.path)
	return nil
}

// modifiedTimes returns each slot's modification time in epoch seconds,
// or 0 for empty slots and paths that cannot be stat'ed.
func (m *Manager) modifiedTimes(slots models.Slots) []float64 {
	times := make([]float64, models.SlotCount)
	for i, slot := range slots {
		if !slot.Assigned() {
			continue
		}
		info, err := os.Stat(slot.Path)
		if err != nil {
			m.logger.Warn("Could not read modification time", "path", slot.Path, "error", err)
			continue
		}
		times[i] = float64(info.ModTime().UnixNano()) / 1e9
	}
	return times
}

// Reset deletes the config file. A missing file is not an error.
func (m *Manager) Reset() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	m.preferences = models.DefaultPreferences()
	m.windowState = models.DefaultWindowState()
	m.logger.Info("Config file removed", "path", m.path)
	return nil
}

// writeFileAtomic writes data to a sibling temp file and renames it over path
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
