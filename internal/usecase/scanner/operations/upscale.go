package operations

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Upscaler enlarges renders narrower than minWidth, keeping the aspect ratio.
// Low-DPI renders of small codes otherwise lose their finder patterns.
type Upscaler struct {
	minWidth int
}

func NewUpscaler(minWidth int) *Upscaler {
	return &Upscaler{minWidth: minWidth}
}

func (u *Upscaler) Process(img *image.RGBA) *image.RGBA {
	bounds := img.Bounds()
	if u.minWidth <= 0 || bounds.Dx() == 0 || bounds.Dx() >= u.minWidth {
		return img
	}

	ratio := float64(bounds.Dy()) / float64(bounds.Dx())
	height := int(float64(u.minWidth) * ratio)
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, u.minWidth, height))
	// Nearest neighbour keeps module edges sharp.
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// ToRGBA copies any decoded image into an RGBA pixel buffer.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, bounds.Min, xdraw.Src)
	return dst
}
