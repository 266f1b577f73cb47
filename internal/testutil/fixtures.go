// Package testutil builds PDF fixtures on disk for tests.
package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/stretchr/testify/require"
)

func init() {
	// Keep pdfcpu from writing its config into the user's home directory.
	api.DisableConfigDir()
}

// QRImage returns a size x size QR code encoding content.
func QRImage(t testing.TB, content string, size int) image.Image {
	t.Helper()

	matrix, err := qrcode.NewQRCodeWriter().Encode(content, gozxing.BarcodeFormat_QR_CODE, size, size, nil)
	require.NoError(t, err)

	img := image.NewRGBA(matrix.Bounds())
	draw.Draw(img, img.Bounds(), matrix, image.Point{}, draw.Src)
	return img
}

func BlankImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img
}

// PDFWithImage writes a single page PDF holding img into dir and returns
// its path. The page takes the dimensions of the image.
func PDFWithImage(t testing.TB, dir, name string, img image.Image) string {
	t.Helper()

	imgDir := t.TempDir()
	imgPath := filepath.Join(imgDir, "page.png")
	f, err := os.Create(imgPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	pdfPath := filepath.Join(dir, name)
	require.NoError(t, api.ImportImagesFile([]string{imgPath}, pdfPath, pdfcpu.DefaultImportConfig(), nil))

	pages, err := api.PageCountFile(pdfPath)
	require.NoError(t, err)
	require.Equal(t, 1, pages)

	return pdfPath
}

// QRPDF writes a one page PDF whose page is a QR code encoding content.
func QRPDF(t testing.TB, dir, name, content string) string {
	t.Helper()
	return PDFWithImage(t, dir, name, QRImage(t, content, 320))
}

// BlankPDF writes a one page PDF with an empty white page.
func BlankPDF(t testing.TB, dir, name string) string {
	t.Helper()
	return PDFWithImage(t, dir, name, BlankImage(320, 320))
}

// ReadBytes returns the content of a fixture file.
func ReadBytes(t testing.TB, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}
