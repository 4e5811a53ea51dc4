// Package app wires the settings store, profile/album storage and archive
// transfer together behind the operation set the presentation layer
// consumes. All methods take and return plain strings, paths and mappings.
package app

import (
	"fmt"
	"log/slog"
	"os"

	"profiler-go/internal/archive"
	"profiler-go/internal/model"
	"profiler-go/internal/settings"
	"profiler-go/internal/storage"
	"profiler-go/internal/task"
)

// App is the application layer between the presentation surface and the
// storage components. Settings are read once at construction; the storage
// root they name is injected into every component.
type App struct {
	cfg      map[string]any
	store    *settings.Store
	profiles *storage.ProfileStore
	albums   *storage.AlbumStore
	transfer *archive.Transfer
	runner   *task.Runner
	logger   *slog.Logger
	logFile  *os.File
}

// New creates a fully wired App. operation identifies the command being run
// and tags every log record. The caller must call Close when done.
func New(settingsPath, logDir, operation string) (*App, error) {
	logger, logFile, err := newLogger(logDir, operation)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	store := settings.NewStore(settingsPath)
	cfg, err := store.Load()
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	root := settings.StorageDirectory(cfg)

	return &App{
		cfg:      cfg,
		store:    store,
		profiles: storage.NewProfileStore(root, logger),
		albums:   storage.NewAlbumStore(root, logger),
		transfer: archive.New(root, logger),
		runner:   task.NewRunner(logger),
		logger:   logger,
		logFile:  logFile,
	}, nil
}

// Settings returns the settings mapping loaded at construction.
func (a *App) Settings() map[string]any {
	return a.cfg
}

// UpdateSettings shallow-merges changes into the persisted settings
// document and returns the merged result. The running App keeps using the
// storage root it was constructed with.
func (a *App) UpdateSettings(changes map[string]any) (map[string]any, error) {
	cfg, err := a.store.Update(changes)
	if err != nil {
		return nil, err
	}
	a.logger.Info("settings updated", "keys", len(changes))
	return cfg, nil
}

// StorageRoot returns the resolved storage root directory.
func (a *App) StorageRoot() string {
	return a.profiles.Root()
}

// ListProfiles enumerates profile folder names under the storage root.
func (a *App) ListProfiles() ([]string, error) {
	return a.profiles.List()
}

// CreateProfile creates a profile folder seeded with default metadata
// merged with initial.
func (a *App) CreateProfile(name string, initial model.Metadata) (string, error) {
	return a.profiles.Create(name, initial)
}

// DeleteProfile removes a profile folder and everything in it.
func (a *App) DeleteProfile(name string) (bool, error) {
	return a.profiles.Delete(name)
}

// ReadMetadata returns a profile's metadata document, or nil if absent.
func (a *App) ReadMetadata(name string) (model.Metadata, error) {
	return a.profiles.ReadMetadata(name)
}

// UpdateMetadata shallow-merges changes into a profile's metadata document.
func (a *App) UpdateMetadata(name string, changes model.Metadata) (model.Metadata, error) {
	return a.profiles.UpdateMetadata(name, changes)
}

// CreateAlbum creates a (possibly nested) album folder.
func (a *App) CreateAlbum(profile, albumPath string) (string, error) {
	return a.albums.CreateAlbum(profile, albumPath)
}

// ListAlbums lists the immediate album folders of a profile.
func (a *App) ListAlbums(profile string) ([]string, error) {
	return a.albums.ListAlbums(profile)
}

// ListAlbumEntries lists the immediate children of an album path.
func (a *App) ListAlbumEntries(profile, albumPath string) ([]model.AlbumEntry, error) {
	return a.albums.ListEntries(profile, albumPath)
}

// DeleteAlbum removes an album folder and everything in it.
func (a *App) DeleteAlbum(profile, albumPath string) (bool, error) {
	return a.albums.DeleteAlbum(profile, albumPath)
}

// DeleteAlbumFile removes a single file within an album path.
func (a *App) DeleteAlbumFile(profile, albumPath, filename string) (bool, error) {
	return a.albums.DeleteFile(profile, albumPath, filename)
}

// UploadFile copies an external file into an album path.
func (a *App) UploadFile(profile, albumPath, srcPath string) (string, error) {
	return a.albums.UploadFile(profile, albumPath, srcPath)
}

// ExportProfile starts a background export of the profile folder to a zip
// archive and returns the task. The result arrives on the task's channel.
func (a *App) ExportProfile(profile, destPath string) *task.Task {
	return a.runner.Run("export", func() (string, error) {
		return a.transfer.Export(profile, destPath)
	})
}

// ImportProfile starts a background import of an archive into a new
// profile folder and returns the task. targetName may be empty to derive
// the name from the archive filename.
func (a *App) ImportProfile(archivePath, targetName string) *task.Task {
	return a.runner.Run("import", func() (string, error) {
		return a.transfer.Import(archivePath, targetName)
	})
}

// Close releases the log file.
func (a *App) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
