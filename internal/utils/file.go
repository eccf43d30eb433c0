package utils

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteJSON marshals v with indentation and writes it to path,
// truncating any previous contents
func WriteJSON[T any](path string, v *T) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal '%v': %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write '%v': %w", path, err)
	}
	return nil
}

// ReadJSON reads path and unmarshals its contents into v
func ReadJSON[T any](path string, v *T) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read '%v': %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("failed to unmarshal '%v': %w", path, err)
	}
	return nil
}
