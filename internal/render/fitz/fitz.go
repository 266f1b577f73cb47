package fitz

import (
	"fmt"
	"image"

	"pdf-qr-scanner/internal/render"

	gofitz "github.com/gen2brain/go-fitz"
)

// Renderer rasterizes PDF pages with MuPDF.
type Renderer struct {
	dpi float64
}

func NewRenderer(dpi float64) *Renderer {
	return &Renderer{dpi: dpi}
}

func (r *Renderer) Open(path string) (render.Document, error) {
	doc, err := gofitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}

	return &document{doc: doc, dpi: r.dpi}, nil
}

type document struct {
	doc *gofitz.Document
	dpi float64
}

func (d *document) PageCount() int {
	return d.doc.NumPage()
}

func (d *document) RenderPage(index int) (image.Image, error) {
	if index < 0 || index >= d.doc.NumPage() {
		return nil, fmt.Errorf("%w: index %d", render.ErrPageNotFound, index)
	}

	img, err := d.doc.ImageDPI(index, d.dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", index, err)
	}

	return img, nil
}

func (d *document) Close() error {
	return d.doc.Close()
}
