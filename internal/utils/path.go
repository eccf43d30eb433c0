package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir, parents included, when missing
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory '%v': %w", dir, err)
	}
	return nil
}

// EnsureOrtrConfigDir resolves the ortr configuration directory and
// creates it when missing. Resolution order: ORTR_CONFIG_HOME when
// set, otherwise <UserConfigDir>/.ortr.
func EnsureOrtrConfigDir() (string, error) {
	dir := os.Getenv("ORTR_CONFIG_HOME")
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve user config directory: %w", err)
		}
		dir = filepath.Join(base, ".ortr")
	}
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}
