package storage

import (
	"os"
	"path/filepath"
)

const appName = "strata"

// DataDir returns the directory holding the CSV records, creating it if
// needed. Follows XDG_DATA_HOME with the usual ~/.local/share fallback;
// if neither resolves, the working directory is used so the app still
// runs.
func DataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "."
	}
	return dir
}

// CategoriesPath returns the canonical categories.csv location.
func CategoriesPath() string {
	return filepath.Join(DataDir(), "categories.csv")
}

// TimeLogPath returns the canonical time_log.csv location.
func TimeLogPath() string {
	return filepath.Join(DataDir(), "time_log.csv")
}
