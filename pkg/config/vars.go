package config

import (
	"path/filepath"
)

// AppName is used in generating file system paths.
var AppName = "gntnrs"

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gntnrs by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gntnrs by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gntnrs/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gntnrs/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SQLiteFilePath returns the default SQLite database path.
func SQLiteFilePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), AppName+".sqlite")
}
