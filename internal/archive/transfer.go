// Package archive exports profile folders as zip files and materializes
// them back. It operates on raw paths and the storage layout convention
// only; it does not depend on the storage APIs.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"profiler-go/internal/shared"
	"profiler-go/internal/storage"
)

// Transfer serializes whole profile folders to zip archives and back.
// It holds no state between calls.
type Transfer struct {
	root   string
	logger *slog.Logger
}

// New creates a Transfer over the given storage root.
func New(root string, logger *slog.Logger) *Transfer {
	return &Transfer{root: root, logger: logger}
}

// Export writes every regular file under the profile folder into a zip
// archive at destPath, using the path relative to the profile folder as
// the entry name. Empty subdirectories are not preserved: no file anchors
// them. Returns shared.ErrNotFound if the profile folder does not exist.
func (t *Transfer) Export(profile, destPath string) (string, error) {
	if err := storage.ValidateName(profile); err != nil {
		return "", err
	}

	folder := filepath.Join(t.root, profile)
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("profile folder %s: %w", folder, shared.ErrNotFound)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating archive file: %w", err)
	}
	defer dest.Close()

	zw := zip.NewWriter(dest)

	count := 0
	err = filepath.WalkDir(folder, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(folder, p)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", p, err)
		}

		// Entry names use forward slashes per the zip format.
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("creating archive entry: %w", err)
		}

		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("opening %s: %w", p, err)
		}
		defer f.Close()

		if _, err := io.Copy(w, f); err != nil {
			return fmt.Errorf("writing archive entry: %w", err)
		}
		count++
		return nil
	})
	if err != nil {
		zw.Close()
		return "", fmt.Errorf("walking profile folder: %w", err)
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalizing archive: %w", err)
	}
	if err := dest.Close(); err != nil {
		return "", fmt.Errorf("closing archive file: %w", err)
	}

	t.logger.Info("profile exported", "profile", profile, "archive", destPath, "files", count)
	return destPath, nil
}

// Import materializes an archive into a new profile folder under the root.
// If targetName is empty, the name is derived from the archive's base
// filename with the extension stripped. Returns shared.ErrNotFound if the
// archive does not exist and shared.ErrAlreadyExists if a folder with the
// resolved name already exists; import never overwrites.
func (t *Transfer) Import(archivePath, targetName string) (string, error) {
	info, err := os.Stat(archivePath)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("archive file %s: %w", archivePath, shared.ErrNotFound)
	}

	if targetName == "" {
		base := filepath.Base(archivePath)
		targetName = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := storage.ValidateName(targetName); err != nil {
		return "", err
	}

	dest := filepath.Join(t.root, targetName)
	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("destination folder %s: %w", dest, shared.ErrAlreadyExists)
	}

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("opening archive: %w", err)
	}
	defer zr.Close()

	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", fmt.Errorf("creating destination folder: %w", err)
	}

	count := 0
	for _, f := range zr.File {
		if err := extractEntry(dest, f); err != nil {
			return "", err
		}
		if !f.FileInfo().IsDir() {
			count++
		}
	}

	t.logger.Info("profile imported", "profile", targetName, "archive", archivePath, "files", count)
	return dest, nil
}

// ListProfiles enumerates the immediate subdirectories of the storage root
// without touching any metadata. A missing root yields an empty list.
func (t *Transfer) ListProfiles() ([]string, error) {
	entries, err := os.ReadDir(t.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading storage root: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// extractEntry writes one archive entry under dest, reconstructing the
// stored relative path. Entries that would escape dest are rejected.
func extractEntry(dest string, f *zip.File) error {
	name := path.Clean(f.Name)
	if path.IsAbs(name) || name == ".." || strings.HasPrefix(name, "../") {
		return fmt.Errorf("archive entry escapes destination: %s", f.Name)
	}

	target := filepath.Join(dest, filepath.FromSlash(name))

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("creating folder %s: %w", target, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating folder for %s: %w", target, err)
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening archive entry %s: %w", f.Name, err)
	}
	defer src.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("extracting %s: %w", f.Name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", target, err)
	}
	return nil
}
