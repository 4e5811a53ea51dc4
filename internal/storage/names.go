package storage

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"profiler-go/internal/shared"
)

// segmentRule accepts a single path segment: no separators, no traversal,
// no NUL bytes.
var segmentRule = validation.NewStringRule(func(s string) bool {
	if s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\\x00")
}, "must be a valid path segment")

// ValidateName checks that name can be used as a profile folder name or a
// file name (a single path segment).
func ValidateName(name string) error {
	err := validation.Validate(name,
		validation.Required,
		validation.Length(1, 255),
		segmentRule,
	)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", shared.ErrInvalidName, name, err)
	}
	return nil
}

// ValidateAlbumPath checks a slash-separated album path such as
// "album1/subfolder1": every segment must be a valid path segment.
func ValidateAlbumPath(albumPath string) error {
	if albumPath == "" {
		return fmt.Errorf("%w: album path is empty", shared.ErrInvalidName)
	}
	for _, seg := range strings.Split(albumPath, "/") {
		if err := ValidateName(seg); err != nil {
			return fmt.Errorf("album path %q: %w", albumPath, err)
		}
	}
	return nil
}
