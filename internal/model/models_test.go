package model

import "testing"

func TestDefaultMetadata(t *testing.T) {
	data := DefaultMetadata()

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
}

func TestMetadata_Merge(t *testing.T) {
	m := Metadata{"a": "1", "b": "2"}
	m.Merge(Metadata{"b": "3", "c": "4"})

	if m["a"] != "1" || m["b"] != "3" || m["c"] != "4" {
		t.Errorf("merged = %v, want a=1 b=3 c=4", m)
	}
}

func TestNewFileEntry(t *testing.T) {
	tests := []struct {
		name     string
		wantType string
	}{
		{"cat.png", "png"},
		{"archive.tar.gz", "gz"},
		{"README", ""},
		{".hidden", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewFileEntry(tt.name, 10)
			if e.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", e.Type, tt.wantType)
			}
			if e.IsFolder || e.Size == nil || *e.Size != 10 {
				t.Errorf("entry = %+v, want size=10 is_folder=false", e)
			}
		})
	}
}

func TestNewFolderEntry(t *testing.T) {
	e := NewFolderEntry("photos")
	if e.Type != FolderType || !e.IsFolder || e.Size != nil {
		t.Errorf("entry = %+v, want type=folder size=nil is_folder=true", e)
	}
}
