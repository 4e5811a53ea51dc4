// Package settings implements the flat key-value settings store persisted
// as a single JSON document.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultStorageDirectory is used when the settings document does not set
// storage_directory.
const DefaultStorageDirectory = "storage/"

// Store reads and writes the settings document at a fixed path.
// Access is last-writer-wins; concurrent external edits are not guarded.
type Store struct {
	path string
}

// NewStore creates a Store bound to the given settings file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the settings file path this store is bound to.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings document. A missing file is not an error: it
// yields an empty mapping. Unknown keys are returned as-is.
func (s *Store) Load() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	var cfg map[string]any
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", s.path, err)
	}
	if cfg == nil {
		cfg = map[string]any{}
	}
	return cfg, nil
}

// Update loads the current settings, shallow-merges changes on top,
// persists the merged document and returns it.
func (s *Store) Update(changes map[string]any) (map[string]any, error) {
	cfg, err := s.Load()
	if err != nil {
		return nil, err
	}

	for k, v := range changes {
		cfg[k] = v
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating settings directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return nil, fmt.Errorf("writing settings file: %w", err)
	}
	return cfg, nil
}

// StorageDirectory returns the configured storage root from a loaded
// settings mapping, falling back to the default when unset or not a string.
func StorageDirectory(cfg map[string]any) string {
	if v, ok := cfg["storage_directory"].(string); ok && v != "" {
		return v
	}
	return DefaultStorageDirectory
}
