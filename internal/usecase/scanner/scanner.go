package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"pdf-qr-scanner/internal/domain"
	"pdf-qr-scanner/internal/render"
	"pdf-qr-scanner/internal/usecase/scanner/operations"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
)

// Scanner renders the first page of a PDF and looks for a QR code on it.
// Only page one is ever inspected.
type Scanner struct {
	renderer  pdfRenderer
	detector  qrDetector
	quietZone *operations.QuietZone
	upscaler  *operations.Upscaler
	logger    *zlog.Zerolog

	// loadImage reads the scratch PNG back from disk.
	loadImage func(path string) (image.Image, error)
}

type Options struct {
	QuietZone int
	MinWidth  int
}

func NewScanner(renderer pdfRenderer, detector qrDetector, opts Options, logger *zlog.Zerolog) *Scanner {
	return &Scanner{
		renderer:  renderer,
		detector:  detector,
		quietZone: operations.NewQuietZone(opts.QuietZone),
		upscaler:  operations.NewUpscaler(opts.MinWidth),
		logger:    logger,
		loadImage: readImage,
	}
}

// Scan returns the decoded payload of the first QR code on page one. A page
// without a code is a success carrying domain.NoQRCodeFound. Any failure is a
// *ProcessingError. The scratch image is gone from disk when Scan returns.
func (s *Scanner) Scan(ctx context.Context, pdfPath string) (domain.ScanResult, error) {
	scratchPath := ScratchImagePath(pdfPath)
	defer s.removeScratch(ctx, scratchPath)

	result, err := s.scan(pdfPath, scratchPath)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("path", pdfPath).
			Str("request_id", middleware.GetReqID(ctx)).
			Msg("Error in PDF QR scan")
		return domain.ScanResult{}, err
	}

	s.logger.Debug().
		Str("path", pdfPath).
		Bool("found", result.Found).
		Str("request_id", middleware.GetReqID(ctx)).
		Msg("PDF scanned")

	return result, nil
}

func (s *Scanner) scan(pdfPath, scratchPath string) (domain.ScanResult, error) {
	if err := s.renderFirstPage(pdfPath, scratchPath); err != nil {
		return domain.ScanResult{}, err
	}

	img, err := s.loadImage(scratchPath)
	if err != nil {
		return domain.ScanResult{}, newProcessingError(ReasonReadImage, ErrUnreadableImage)
	}

	buf := s.upscaler.Process(s.quietZone.Process(operations.ToRGBA(img)))

	text, found, err := s.detector.Detect(buf)
	if err != nil {
		return domain.ScanResult{}, newProcessingError(ReasonDecode, err)
	}

	if !found || text == "" {
		return domain.ScanResult{Data: domain.NoQRCodeFound}, nil
	}

	return domain.ScanResult{Data: text, Found: true}, nil
}

// renderFirstPage writes page one of the document to scratchPath as PNG. The
// document is closed before returning on every path.
func (s *Scanner) renderFirstPage(pdfPath, scratchPath string) error {
	doc, err := s.renderer.Open(pdfPath)
	if err != nil {
		return newProcessingError(ReasonOpen, err)
	}
	defer func() {
		if err := doc.Close(); err != nil {
			s.logger.Warn().Err(err).Str("path", pdfPath).Msg("Failed to close document")
		}
	}()

	if doc.PageCount() == 0 {
		return newProcessingError(ReasonNoPages, render.ErrNoPages)
	}

	page, err := doc.RenderPage(0)
	if err != nil {
		return newProcessingError(ReasonRender, err)
	}

	if err := writePNG(scratchPath, page); err != nil {
		return newProcessingError(ReasonWriteImage, err)
	}

	return nil
}

func (s *Scanner) removeScratch(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn().
			Err(err).
			Str("path", path).
			Str("request_id", middleware.GetReqID(ctx)).
			Msg("Failed to remove scratch image")
	}
}

// ScratchImagePath returns a fresh scratch image path next to the PDF, unique
// per call so concurrent scans never share a file.
func ScratchImagePath(pdfPath string) string {
	name := domain.ScratchImagePrefix + uuid.NewString() + domain.ScratchImageExt
	return filepath.Join(filepath.Dir(pdfPath), name)
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create scratch image: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close scratch image: %w", cerr)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode scratch image: %w", err)
	}

	return nil
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	return img, nil
}
