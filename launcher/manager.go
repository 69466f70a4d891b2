package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// BundleExt marks a directory that is launched as a single application
const BundleExt = ".app"

var (
	// ErrInvalidTarget is returned when a path is neither a regular file nor a bundle
	ErrInvalidTarget = errors.New("not a valid file or application")

	// ErrLaunchFailed is returned when the platform open or launch call fails
	ErrLaunchFailed = errors.New("launch failed")
)

// runFunc runs a command and returns its error
type runFunc func(name string, args ...string) error

// Manager opens files and launches application bundles
type Manager struct {
	goos string
	run  runFunc
}

// NewManager creates a new launcher for the current platform
func NewManager() *Manager {
	return &Manager{
		goos: runtime.GOOS,
		run:  runCommand,
	}
}

// IsBundle reports whether the path carries the bundle extension
func (m *Manager) IsBundle(path string) bool {
	return strings.EqualFold(filepath.Ext(path), BundleExt)
}

// Validate checks that path is a regular file or an existing bundle directory
func (m *Manager) Validate(path string) error {
	if path == "" {
		return fmt.Errorf("empty path: %w", ErrInvalidTarget)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", path, ErrInvalidTarget, err)
	}

	if info.Mode().IsRegular() {
		return nil
	}
	if info.IsDir() && m.IsBundle(path) {
		return nil
	}
	return fmt.Errorf("%s: %w", path, ErrInvalidTarget)
}

// IsLaunchable reports whether Validate accepts the path
func (m *Manager) IsLaunchable(path string) bool {
	return m.Validate(path) == nil
}

// Open hands the path to the platform's default handler
func (m *Manager) Open(path string) error {
	name, args := openCommand(m.goos, path)
	if err := m.run(name, args...); err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrLaunchFailed, path, err)
	}
	return nil
}

// LaunchApp starts a bundle as an application
func (m *Manager) LaunchApp(path string) error {
	name, args := launchCommand(m.goos, path)
	if err := m.run(name, args...); err != nil {
		return fmt.Errorf("%w: launch %s: %w", ErrLaunchFailed, path, err)
	}
	return nil
}

func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default: // Linux and BSDs
		return "xdg-open", []string{path}
	}
}

func launchCommand(goos, path string) (string, []string) {
	if goos == "darwin" {
		return "open", []string{"-a", path}
	}
	// Bundles only launch natively on macOS; elsewhere let the desktop decide
	return openCommand(goos, path)
}

// runCommand runs the opener and folds its stderr into the error
func runCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// CleanPath cleans and normalizes a file path
func CleanPath(path string) string {
	// Remove surrounding quotes
	path = strings.Trim(path, `"'`)
	if path == "" {
		return ""
	}

	// Normalize path separators
	path = filepath.Clean(path)

	// Convert to absolute path if it's not already
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err == nil {
			path = absPath
		}
	}

	return path
}
