package shared

import "errors"

var (
	// ErrNotFound is returned when a profile, album, file or archive that
	// an operation requires does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when an import target folder already
	// exists. Import never overwrites.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidName is returned when a profile, album or file name is not
	// a valid path segment.
	ErrInvalidName = errors.New("invalid name")
)
