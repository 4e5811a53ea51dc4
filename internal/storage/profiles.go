// Package storage manages profile folders and their album subfolders under
// a single storage root:
//
//	<root>/<profile>/data.json
//	<root>/<profile>/<album>/<...files and nested folders...>
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"profiler-go/internal/model"
)

// ProfileStore manages the set of profile folders under the storage root.
type ProfileStore struct {
	root   string
	logger *slog.Logger
}

// NewProfileStore creates a ProfileStore rooted at root. The root is not
// created until the first profile is.
func NewProfileStore(root string, logger *slog.Logger) *ProfileStore {
	return &ProfileStore{root: root, logger: logger}
}

// Root returns the storage root path.
func (s *ProfileStore) Root() string {
	return s.root
}

// List enumerates the immediate subdirectories of the storage root.
// A missing root yields an empty list, not an error. Order is directory
// enumeration order; callers needing a stable order must sort.
func (s *ProfileStore) List() ([]string, error) {
	return listSubdirs(s.root)
}

// Create creates the profile folder and writes its metadata document as the
// default schema shallow-merged with initial. Creating the folder is
// idempotent, but the metadata document of an existing profile is rewritten:
// callers wanting collision safety must check List first.
func (s *ProfileStore) Create(name string, initial model.Metadata) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	path := filepath.Join(s.root, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("creating profile folder: %w", err)
	}

	data := model.DefaultMetadata().Merge(initial)
	if err := writeMetadata(filepath.Join(path, model.MetadataFile), data); err != nil {
		return "", err
	}

	s.logger.Info("profile created", "name", name, "path", path)
	return path, nil
}

// Delete recursively removes the profile folder. It reports whether a
// folder existed to remove; deleting a missing profile is not an error.
func (s *ProfileStore) Delete(name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}

	path := filepath.Join(s.root, name)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false, nil
	}

	if err := os.RemoveAll(path); err != nil {
		return false, fmt.Errorf("deleting profile folder: %w", err)
	}

	s.logger.Info("profile deleted", "name", name)
	return true, nil
}

// ReadMetadata returns the parsed metadata document, or nil if the profile
// folder or its document does not exist. Absence is a normal state, not a
// failure.
func (s *ProfileStore) ReadMetadata(name string) (model.Metadata, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	dataPath := filepath.Join(s.root, name, model.MetadataFile)
	raw, err := os.ReadFile(dataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading metadata: %w", err)
	}

	var data model.Metadata
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing metadata %s: %w", dataPath, err)
	}
	return data, nil
}

// UpdateMetadata shallow-merges changes on top of the existing document
// (or an empty one if none exists yet), writes the result and returns it.
// Keys not named in changes are preserved, including keys outside the
// default schema.
func (s *ProfileStore) UpdateMetadata(name string, changes model.Metadata) (model.Metadata, error) {
	data, err := s.ReadMetadata(name)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = model.Metadata{}
	}

	data.Merge(changes)

	dataPath := filepath.Join(s.root, name, model.MetadataFile)
	if err := writeMetadata(dataPath, data); err != nil {
		return nil, err
	}

	s.logger.Info("metadata updated", "name", name, "keys", len(changes))
	return data, nil
}

// writeMetadata rewrites the metadata document in full. Writes are not
// transactional; an interrupted write can truncate the document.
func writeMetadata(path string, data model.Metadata) error {
	raw, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

// listSubdirs returns the names of the immediate subdirectories of dir.
// A missing dir yields an empty list.
func listSubdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
