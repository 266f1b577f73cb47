package scanner

import (
	"image"

	"pdf-qr-scanner/internal/render"
)

type pdfRenderer interface {
	Open(path string) (render.Document, error)
}

type qrDetector interface {
	Detect(img image.Image) (text string, found bool, err error)
}
