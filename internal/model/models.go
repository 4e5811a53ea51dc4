package model

import (
	"path/filepath"
	"strings"
)

// MetadataFile is the name of the per-profile metadata document.
const MetadataFile = "data.json"

// FolderType is the entry type marker for subfolders in album listings.
const FolderType = "folder"

// Metadata is a profile's metadata document. It is a plain JSON object:
// the default schema fields plus any extra keys from prior writes, which
// are preserved verbatim across updates.
type Metadata map[string]any

// DefaultMetadata returns a fresh metadata document with the default schema:
// empty strings for scalar fields, empty lists for multi-valued fields.
func DefaultMetadata() Metadata {
	return Metadata{
		"displayname":   "",
		"realname":      "",
		"phone_number":  "",
		"address":       "",
		"email":         []any{},
		"social_medias": []any{},
		"notes":         "",
	}
}

// Merge applies changes on top of m as a shallow merge and returns m.
// Keys absent from changes are left untouched.
func (m Metadata) Merge(changes Metadata) Metadata {
	for k, v := range changes {
		m[k] = v
	}
	return m
}

// AlbumEntry describes one immediate child of an album folder.
// Regular files carry their extension and size; subfolders carry the
// folder marker type and a null size.
type AlbumEntry struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Size     *int64 `json:"size"`
	IsFolder bool   `json:"is_folder"`
}

// NewFileEntry builds an entry for a regular file. Dotfiles such as
// ".hidden" have no extension.
func NewFileEntry(name string, size int64) AlbumEntry {
	ext := filepath.Ext(name)
	if ext == name {
		ext = ""
	}
	return AlbumEntry{
		Name:     name,
		Type:     strings.TrimPrefix(ext, "."),
		Size:     &size,
		IsFolder: false,
	}
}

// NewFolderEntry builds an entry for a subfolder.
func NewFolderEntry(name string) AlbumEntry {
	return AlbumEntry{
		Name:     name,
		Type:     FolderType,
		IsFolder: true,
	}
}
