package cellterm

import "errors"

// Sentinel errors callers may test for with errors.Is.
var (
	ErrNotATTY   = errors.New("cellterm: file is not a controlling terminal")
	ErrClosed    = errors.New("cellterm: already closed")
	ErrQueueClosed = errors.New("cellterm: event queue closed")
)
