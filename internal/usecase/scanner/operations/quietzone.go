package operations

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// QuietZone surrounds the page with a white margin so that codes printed
// flush against the page edge still have the border a detector expects.
type QuietZone struct {
	margin int
}

func NewQuietZone(margin int) *QuietZone {
	return &QuietZone{margin: margin}
}

func (q *QuietZone) Process(img *image.RGBA) *image.RGBA {
	if q.margin <= 0 {
		return img
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()+2*q.margin, bounds.Dy()+2*q.margin))
	xdraw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, xdraw.Src)
	xdraw.Draw(dst, image.Rect(q.margin, q.margin, q.margin+bounds.Dx(), q.margin+bounds.Dy()), img, bounds.Min, xdraw.Over)

	return dst
}
