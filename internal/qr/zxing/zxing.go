package zxing

import (
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

type Detector struct {
	hints map[gozxing.DecodeHintType]interface{}
}

func NewDetector() *Detector {
	return &Detector{
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

func (d *Detector) Detect(img image.Image) (string, bool, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", false, fmt.Errorf("failed to binarize image: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, d.hints)
	if err != nil {
		// Not found, checksum and format failures all mean no readable code.
		var readerErr gozxing.ReaderException
		if errors.As(err, &readerErr) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to decode QR code: %w", err)
	}

	text := result.GetText()
	return text, text != "", nil
}
