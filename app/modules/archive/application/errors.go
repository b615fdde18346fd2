package archiveservice

import "errors"

var (
	// ErrArchiveNotFound is returned for unknown archive ids.
	ErrArchiveNotFound = errors.New("archived round not found")
	// ErrInvalidSince is returned when a since filter cannot be parsed.
	ErrInvalidSince = errors.New("unrecognized since filter")
	// ErrInvalidArchive is returned when asked to archive a round without an id.
	ErrInvalidArchive = errors.New("invalid archive request")
)
