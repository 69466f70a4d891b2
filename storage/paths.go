package storage

import (
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "myPanel.json"

// defaultConfigPath places the config beside the executable when that
// directory is writable, then in the user config dir, then in the working
// directory.
func defaultConfigPath() string {
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		if isWritableDir(dir) {
			return filepath.Join(dir, ConfigFileName)
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil && configDir != "" {
		dir := filepath.Join(configDir, "myPanel")
		if err := os.MkdirAll(dir, 0755); err == nil {
			return filepath.Join(dir, ConfigFileName)
		}
	}

	return ConfigFileName
}

// isWritableDir probes dir by creating and removing a temp file
func isWritableDir(dir string) bool {
	f, err := os.CreateTemp(dir, ".myPanel-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
