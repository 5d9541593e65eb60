// Package filex contains filesystem helpers for locating the client's
// per-user data directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureUserDataDir returns the per-user data directory for the given
// application name, creating it if it does not exist. The directory is
// private to the user since it holds the persisted credential database.
func EnsureUserDataDir(appName string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}

	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}
