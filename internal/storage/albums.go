package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"profiler-go/internal/model"
	"profiler-go/internal/shared"
)

// AlbumStore manages album subfolders nested under profile folders.
// Album paths are slash-separated and may address nested folders, e.g.
// "album1/subfolder1".
type AlbumStore struct {
	root   string
	logger *slog.Logger
}

// NewAlbumStore creates an AlbumStore over the same storage root as the
// profile store.
func NewAlbumStore(root string, logger *slog.Logger) *AlbumStore {
	return &AlbumStore{root: root, logger: logger}
}

// albumDir resolves an album path to its on-disk location after validating
// every segment.
func (s *AlbumStore) albumDir(profile, albumPath string) (string, error) {
	if err := ValidateName(profile); err != nil {
		return "", err
	}
	if err := ValidateAlbumPath(albumPath); err != nil {
		return "", err
	}
	return filepath.Join(s.root, profile, filepath.FromSlash(albumPath)), nil
}

// CreateAlbum creates the album folder, including any missing intermediate
// segments. Creating an existing album is a no-op.
func (s *AlbumStore) CreateAlbum(profile, albumPath string) (string, error) {
	dir, err := s.albumDir(profile, albumPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating album folder: %w", err)
	}
	s.logger.Info("album created", "profile", profile, "album", albumPath)
	return dir, nil
}

// ListAlbums lists the immediate child folders directly under the profile
// folder. Nested sub-albums are discovered by browsing, not returned flat.
// A missing profile folder yields an empty list.
func (s *AlbumStore) ListAlbums(profile string) ([]string, error) {
	if err := ValidateName(profile); err != nil {
		return nil, err
	}
	return listSubdirs(filepath.Join(s.root, profile))
}

// ListEntries lists the immediate children of the album path. Regular files
// carry name, extension type and size; subfolders carry the folder marker.
// A missing album path yields an empty list.
func (s *AlbumStore) ListEntries(profile, albumPath string) ([]model.AlbumEntry, error) {
	dir, err := s.albumDir(profile, albumPath)
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.AlbumEntry{}, nil
		}
		return nil, fmt.Errorf("reading album folder: %w", err)
	}

	entries := []model.AlbumEntry{}
	for _, e := range dirEntries {
		if e.IsDir() {
			entries = append(entries, model.NewFolderEntry(e.Name()))
			continue
		}
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		entries = append(entries, model.NewFileEntry(e.Name(), info.Size()))
	}
	return entries, nil
}

// DeleteAlbum recursively removes the album folder. It reports whether a
// folder existed to remove.
func (s *AlbumStore) DeleteAlbum(profile, albumPath string) (bool, error) {
	dir, err := s.albumDir(profile, albumPath)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false, nil
	}

	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("deleting album folder: %w", err)
	}

	s.logger.Info("album deleted", "profile", profile, "album", albumPath)
	return true, nil
}

// DeleteFile removes a single regular file by name within the album path.
// It reports whether such a file existed; directories are never removed
// through this operation.
func (s *AlbumStore) DeleteFile(profile, albumPath, filename string) (bool, error) {
	dir, err := s.albumDir(profile, albumPath)
	if err != nil {
		return false, err
	}
	if err := ValidateName(filename); err != nil {
		return false, err
	}

	path := filepath.Join(dir, filename)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false, nil
	}

	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("deleting file: %w", err)
	}

	s.logger.Info("file deleted", "profile", profile, "album", albumPath, "file", filename)
	return true, nil
}

// UploadFile copies an external file into the album path, creating the
// album folder if needed. The source's base filename is preserved. An
// existing file of the same name is overwritten without warning (last
// write wins).
func (s *AlbumStore) UploadFile(profile, albumPath, srcPath string) (string, error) {
	dir, err := s.albumDir(profile, albumPath)
	if err != nil {
		return "", err
	}

	src, err := os.Open(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("source file %s: %w", srcPath, shared.ErrNotFound)
		}
		return "", fmt.Errorf("opening source file: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("stat source file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("source is not a regular file: %s", srcPath)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating album folder: %w", err)
	}

	destPath := filepath.Join(dir, filepath.Base(srcPath))
	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating destination file: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		return "", fmt.Errorf("copying file: %w", err)
	}
	if err := dest.Close(); err != nil {
		return "", fmt.Errorf("closing destination file: %w", err)
	}

	s.logger.Info("file uploaded", "profile", profile, "album", albumPath,
		"file", filepath.Base(srcPath), "size", info.Size())
	return destPath, nil
}
