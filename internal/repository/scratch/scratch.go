package scratch

import "io"

// Workspace is a scratch directory owned by a single request.
type Workspace interface {
	Dir() string
	Save(name string, data io.Reader) (string, error)
	Remove(path string) error
	Close() error
}
