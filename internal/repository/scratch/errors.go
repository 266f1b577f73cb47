package scratch

import "errors"

var (
	ErrInvalidName     = errors.New("invalid scratch file name")
	ErrWorkspaceClosed = errors.New("scratch workspace closed")
	ErrOutsideRoot     = errors.New("path outside scratch workspace")
	ErrStorageError    = errors.New("scratch storage error")
)
