package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"profiler-go/internal/model"
)

// newTestApp wires an App over a temp storage root via a real settings file.
func newTestApp(t *testing.T) *App {
	t.Helper()

	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "settings.json")
	root := filepath.Join(dir, "storage")

	doc, err := json.Marshal(map[string]any{"storage_directory": root, "author": "test"})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(settingsPath, doc, 0644); err != nil {
		t.Fatal(err)
	}

	a, err := New(settingsPath, filepath.Join(dir, "log"), "Test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestApp_New(t *testing.T) {
	t.Run("resolves the storage root from settings", func(t *testing.T) {
		a := newTestApp(t)

		if a.StorageRoot() == "" || filepath.Base(a.StorageRoot()) != "storage" {
			t.Errorf("StorageRoot() = %q, want the configured root", a.StorageRoot())
		}
		if a.Settings()["author"] != "test" {
			t.Errorf("Settings()[author] = %v, want test", a.Settings()["author"])
		}
	})

	t.Run("missing settings file yields the default root", func(t *testing.T) {
		dir := t.TempDir()
		a, err := New(filepath.Join(dir, "nope.json"), filepath.Join(dir, "log"), "Test")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer a.Close()

		if a.StorageRoot() != "storage/" {
			t.Errorf("StorageRoot() = %q, want the default storage/", a.StorageRoot())
		}
	})
}

// TestApp_ProfileLifecycle walks the full user story: empty root, create a
// profile, check its defaults, add an album, upload a file, list it.
func TestApp_ProfileLifecycle(t *testing.T) {
	a := newTestApp(t)

	names, err := a.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("ListProfiles() = %v, want empty root", names)
	}

	if _, err := a.CreateProfile("alice", nil); err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	data, err := a.ReadMetadata("alice")
	if err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}
	if data["displayname"] != "" || data["notes"] != "" {
		t.Errorf("metadata = %v, want default schema with empty strings", data)
	}
	if list, ok := data["email"].([]any); !ok || len(list) != 0 {
		t.Errorf("email = %v, want empty list", data["email"])
	}

	if _, err := a.CreateAlbum("alice", "photos"); err != nil {
		t.Fatalf("CreateAlbum() error = %v", err)
	}

	src := filepath.Join(t.TempDir(), "cat.png")
	if err := os.WriteFile(src, []byte("mewmew"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := a.UploadFile("alice", "photos", src); err != nil {
		t.Fatalf("UploadFile() error = %v", err)
	}

	entries, err := a.ListAlbumEntries("alice", "photos")
	if err != nil {
		t.Fatalf("ListAlbumEntries() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Name != "cat.png" || e.Type != "png" || e.IsFolder || e.Size == nil || *e.Size != 6 {
		t.Errorf("entry = %+v, want {cat.png png 6 false}", e)
	}
}

func TestApp_ExportImport(t *testing.T) {
	a := newTestApp(t)

	if _, err := a.CreateProfile("alice", model.Metadata{"displayname": "Alice"}); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(t.TempDir(), "cat.png")
	if err := os.WriteFile(src, []byte("mewmew"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := a.UploadFile("alice", "photos", src); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(t.TempDir(), "alice.zip")
	if _, err := a.ExportProfile("alice", dest).Wait(); err != nil {
		t.Fatalf("export task error = %v", err)
	}

	if _, err := a.ImportProfile(dest, "alice-copy").Wait(); err != nil {
		t.Fatalf("import task error = %v", err)
	}

	data, err := a.ReadMetadata("alice-copy")
	if err != nil {
		t.Fatalf("ReadMetadata() after import error = %v", err)
	}
	if data["displayname"] != "Alice" {
		t.Errorf("imported displayname = %v, want Alice", data["displayname"])
	}

	entries, err := a.ListAlbumEntries("alice-copy", "photos")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "cat.png" {
		t.Errorf("imported album entries = %+v, want [cat.png]", entries)
	}

	// Importing over the freshly created copy must fail and leave it alone.
	if _, err := a.ImportProfile(dest, "alice-copy").Wait(); err == nil {
		t.Error("second import error = nil, want already-exists failure")
	}
}

func TestApp_UpdateSettings(t *testing.T) {
	a := newTestApp(t)

	cfg, err := a.UpdateSettings(map[string]any{"version": "2.0"})
	if err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}
	if cfg["version"] != "2.0" {
		t.Errorf("version = %v, want 2.0", cfg["version"])
	}
	// Keys from the original document survive the merge.
	if cfg["author"] != "test" {
		t.Errorf("author = %v, want test", cfg["author"])
	}
}
