package render

import (
	"errors"
	"image"
)

var (
	ErrNoPages      = errors.New("document has no pages")
	ErrPageNotFound = errors.New("page not in document")
)

// Document is an opened PDF. It must be closed by the caller.
type Document interface {
	PageCount() int
	RenderPage(index int) (image.Image, error)
	Close() error
}

type Renderer interface {
	Open(path string) (Document, error)
}
