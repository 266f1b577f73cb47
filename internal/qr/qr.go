package qr

import "image"

// Detector finds and decodes a single QR code. found is false when the image
// holds no readable code; err is reserved for decoder failures.
type Detector interface {
	Detect(img image.Image) (text string, found bool, err error)
}
