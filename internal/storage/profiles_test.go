package storage

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"profiler-go/internal/model"
	"profiler-go/internal/shared"
	"profiler-go/internal/testutil"
)

func newProfileStore(t *testing.T) *ProfileStore {
	t.Helper()
	return NewProfileStore(filepath.Join(t.TempDir(), "storage"), testutil.DiscardLogger())
}

func TestProfileStore_List(t *testing.T) {
	t.Run("missing root returns empty list", func(t *testing.T) {
		s := newProfileStore(t)

		names, err := s.List()
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(names) != 0 {
			t.Errorf("List() = %v, want empty", names)
		}
	})

	t.Run("lists only directories", func(t *testing.T) {
		s := newProfileStore(t)
		if _, err := s.Create("alice", nil); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Create("bob", nil); err != nil {
			t.Fatal(err)
		}
		// A stray file at the root is not a profile.
		if err := os.WriteFile(filepath.Join(s.Root(), "notes.txt"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}

		names, err := s.List()
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		slices.Sort(names)
		if !slices.Equal(names, []string{"alice", "bob"}) {
			t.Errorf("List() = %v, want [alice bob]", names)
		}
	})
}

func TestProfileStore_Create(t *testing.T) {
	t.Run("seeds default metadata", func(t *testing.T) {
		s := newProfileStore(t)

		path, err := s.Create("alice", nil)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if path != filepath.Join(s.Root(), "alice") {
			t.Errorf("Create() path = %q", path)
		}

		data, err := s.ReadMetadata("alice")
		if err != nil {
			t.Fatalf("ReadMetadata() error = %v", err)
		}
		for _, key := range []string{"displayname", "realname", "phone_number", "address", "notes"} {
			if data[key] != "" {
				t.Errorf("data[%q] = %v, want empty string", key, data[key])
			}
		}
		for _, key := range []string{"email", "social_medias"} {
			list, ok := data[key].([]any)
			if !ok || len(list) != 0 {
				t.Errorf("data[%q] = %v, want empty list", key, data[key])
			}
		}
	})

	t.Run("merges initial fields over defaults", func(t *testing.T) {
		s := newProfileStore(t)

		if _, err := s.Create("alice", model.Metadata{"displayname": "Alice", "extra": "kept"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		data, err := s.ReadMetadata("alice")
		if err != nil {
			t.Fatalf("ReadMetadata() error = %v", err)
		}
		if data["displayname"] != "Alice" {
			t.Errorf("displayname = %v, want Alice", data["displayname"])
		}
		if data["realname"] != "" {
			t.Errorf("realname = %v, want empty string", data["realname"])
		}
		if data["extra"] != "kept" {
			t.Errorf("extra = %v, want kept", data["extra"])
		}
	})

	t.Run("re-create keeps album files but rewrites metadata", func(t *testing.T) {
		s := newProfileStore(t)

		if _, err := s.Create("alice", model.Metadata{"notes": "first"}); err != nil {
			t.Fatal(err)
		}
		filePath := filepath.Join(s.Root(), "alice", "photos", "cat.png")
		testutil.WriteTree(t, s.Root(), map[string]string{"alice/photos/cat.png": "img"})

		if _, err := s.Create("alice", nil); err != nil {
			t.Fatalf("second Create() error = %v", err)
		}

		if _, err := os.Stat(filePath); err != nil {
			t.Errorf("album file removed by re-create: %v", err)
		}
		data, err := s.ReadMetadata("alice")
		if err != nil {
			t.Fatal(err)
		}
		// Documented behavior: the document is rewritten with defaults.
		if data["notes"] != "" {
			t.Errorf("notes = %v, want empty string after re-create", data["notes"])
		}
	})

	t.Run("invalid names are rejected", func(t *testing.T) {
		s := newProfileStore(t)

		for _, name := range []string{"", ".", "..", "a/b", "a\\b"} {
			if _, err := s.Create(name, nil); !errors.Is(err, shared.ErrInvalidName) {
				t.Errorf("Create(%q) error = %v, want ErrInvalidName", name, err)
			}
		}
	})
}

func TestProfileStore_Delete(t *testing.T) {
	s := newProfileStore(t)

	if _, err := s.Create("alice", nil); err != nil {
		t.Fatal(err)
	}

	removed, err := s.Delete("alice")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !removed {
		t.Error("Delete() = false, want true for existing profile")
	}

	names, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if slices.Contains(names, "alice") {
		t.Error("deleted profile still listed")
	}

	// Boolean-idempotent: a second delete reports false, not an error.
	removed, err = s.Delete("alice")
	if err != nil {
		t.Fatalf("second Delete() error = %v", err)
	}
	if removed {
		t.Error("second Delete() = true, want false")
	}
}

func TestProfileStore_ReadMetadata(t *testing.T) {
	t.Run("missing profile is absent, not an error", func(t *testing.T) {
		s := newProfileStore(t)

		data, err := s.ReadMetadata("ghost")
		if err != nil {
			t.Fatalf("ReadMetadata() error = %v", err)
		}
		if data != nil {
			t.Errorf("ReadMetadata() = %v, want nil", data)
		}
	})

	t.Run("missing document in existing folder is absent", func(t *testing.T) {
		s := newProfileStore(t)
		if err := os.MkdirAll(filepath.Join(s.Root(), "bare"), 0755); err != nil {
			t.Fatal(err)
		}

		data, err := s.ReadMetadata("bare")
		if err != nil {
			t.Fatalf("ReadMetadata() error = %v", err)
		}
		if data != nil {
			t.Errorf("ReadMetadata() = %v, want nil", data)
		}
	})
}

func TestProfileStore_UpdateMetadata(t *testing.T) {
	t.Run("shallow additive merge", func(t *testing.T) {
		s := newProfileStore(t)
		if _, err := s.Create("alice", nil); err != nil {
			t.Fatal(err)
		}
		if _, err := s.UpdateMetadata("alice", model.Metadata{"a": "1", "b": "2"}); err != nil {
			t.Fatal(err)
		}

		data, err := s.UpdateMetadata("alice", model.Metadata{"b": "3", "c": "4"})
		if err != nil {
			t.Fatalf("UpdateMetadata() error = %v", err)
		}
		if data["a"] != "1" || data["b"] != "3" || data["c"] != "4" {
			t.Errorf("merged = %v, want a=1 b=3 c=4", data)
		}

		// The merge must be persisted, not just returned.
		reloaded, err := s.ReadMetadata("alice")
		if err != nil {
			t.Fatal(err)
		}
		if reloaded["b"] != "3" {
			t.Errorf("persisted b = %v, want 3", reloaded["b"])
		}
		if reloaded["displayname"] != "" {
			t.Errorf("default schema key lost: displayname = %v", reloaded["displayname"])
		}
	})

	t.Run("creates the document when only the folder exists", func(t *testing.T) {
		s := newProfileStore(t)
		if err := os.MkdirAll(filepath.Join(s.Root(), "bare"), 0755); err != nil {
			t.Fatal(err)
		}

		data, err := s.UpdateMetadata("bare", model.Metadata{"notes": "hi"})
		if err != nil {
			t.Fatalf("UpdateMetadata() error = %v", err)
		}
		if data["notes"] != "hi" {
			t.Errorf("notes = %v, want hi", data["notes"])
		}
		// No defaults are backfilled by update; it merges over what was read.
		if _, ok := data["displayname"]; ok {
			t.Error("update backfilled defaults, want merge over existing document only")
		}
	})
}
