package scanner

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdf-qr-scanner/internal/domain"
	"pdf-qr-scanner/internal/qr/zxing"
	"pdf-qr-scanner/internal/render"
	"pdf-qr-scanner/internal/render/fitz"
	"pdf-qr-scanner/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

func testLogger() *zlog.Zerolog {
	zlog.Init()
	return &zlog.Logger
}

func newTestScanner() *Scanner {
	return NewScanner(
		fitz.NewRenderer(domain.DefaultRenderDPI),
		zxing.NewDetector(),
		Options{QuietZone: domain.DefaultQRQuietZone, MinWidth: domain.DefaultQRMinWidth},
		testLogger(),
	)
}

// dirEntries lists file names in dir, used to assert scratch images are gone.
func dirEntries(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestScan_QRCode(t *testing.T) {
	dir := t.TempDir()
	path := testutil.QRPDF(t, dir, "hello.pdf", "HELLO")

	result, err := newTestScanner().Scan(context.Background(), path)
	require.NoError(t, err)

	assert.True(t, result.Found)
	assert.Equal(t, "HELLO", result.Data)
	assert.Equal(t, []string{"hello.pdf"}, dirEntries(t, dir))
}

func TestScan_NoQRCode(t *testing.T) {
	dir := t.TempDir()
	path := testutil.BlankPDF(t, dir, "blank.pdf")

	result, err := newTestScanner().Scan(context.Background(), path)
	require.NoError(t, err)

	assert.False(t, result.Found)
	assert.Equal(t, domain.NoQRCodeFound, result.Data)
	assert.Equal(t, []string{"blank.pdf"}, dirEntries(t, dir))
}

func TestScan_InvalidPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o600))

	_, err := newTestScanner().Scan(context.Background(), path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to process PDF:"))

	var perr *ProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ReasonOpen, perr.Reason)
	assert.Equal(t, []string{"broken.pdf"}, dirEntries(t, dir))
}

func TestScan_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := testutil.QRPDF(t, dir, "twice.pdf", "https://example.com/doc/7")
	s := newTestScanner()

	first, err := s.Scan(context.Background(), path)
	require.NoError(t, err)
	second, err := s.Scan(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "https://example.com/doc/7", first.Data)
}

type fakeDocument struct {
	pages     int
	page      image.Image
	renderErr error
	closed    bool
}

func (d *fakeDocument) PageCount() int { return d.pages }

func (d *fakeDocument) RenderPage(int) (image.Image, error) {
	return d.page, d.renderErr
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

type fakeRenderer struct {
	doc     *fakeDocument
	openErr error
}

func (r *fakeRenderer) Open(string) (render.Document, error) {
	if r.openErr != nil {
		return nil, r.openErr
	}
	return r.doc, nil
}

type fakeDetector struct {
	text  string
	found bool
	err   error
	calls int
}

func (d *fakeDetector) Detect(image.Image) (string, bool, error) {
	d.calls++
	return d.text, d.found, d.err
}

func TestScan_Failures(t *testing.T) {
	page := testutil.BlankImage(10, 10)

	tests := []struct {
		name     string
		renderer *fakeRenderer
		detector *fakeDetector
		reason   FailureReason
		message  string
	}{
		{
			name:     "no pages",
			renderer: &fakeRenderer{doc: &fakeDocument{pages: 0}},
			detector: &fakeDetector{},
			reason:   ReasonNoPages,
			message:  "Failed to process PDF: document has no pages",
		},
		{
			name:     "render error",
			renderer: &fakeRenderer{doc: &fakeDocument{pages: 1, renderErr: errors.New("boom")}},
			detector: &fakeDetector{},
			reason:   ReasonRender,
			message:  "Failed to process PDF: boom",
		},
		{
			name:     "decoder error",
			renderer: &fakeRenderer{doc: &fakeDocument{pages: 1, page: page}},
			detector: &fakeDetector{err: errors.New("decoder crashed")},
			reason:   ReasonDecode,
			message:  "Failed to process PDF: decoder crashed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			s := NewScanner(tt.renderer, tt.detector, Options{}, testLogger())

			_, err := s.Scan(context.Background(), filepath.Join(dir, "in.pdf"))

			var perr *ProcessingError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.reason, perr.Reason)
			assert.EqualError(t, err, tt.message)
			assert.True(t, tt.renderer.doc.closed)
			assert.Empty(t, dirEntries(t, dir))
		})
	}
}

func TestScan_EmptyDecodeIsNotFound(t *testing.T) {
	dir := t.TempDir()
	doc := &fakeDocument{pages: 2, page: testutil.BlankImage(10, 10)}
	det := &fakeDetector{text: "", found: true}
	s := NewScanner(&fakeRenderer{doc: doc}, det, Options{}, testLogger())

	result, err := s.Scan(context.Background(), filepath.Join(dir, "in.pdf"))
	require.NoError(t, err)

	assert.Equal(t, domain.ScanResult{Data: domain.NoQRCodeFound}, result)
	assert.Equal(t, 1, det.calls)
	assert.True(t, doc.closed)
	assert.Empty(t, dirEntries(t, dir))
}

func TestScan_OpenErrorKeepsContext(t *testing.T) {
	openErr := errors.New("no such file")
	s := NewScanner(&fakeRenderer{openErr: openErr}, &fakeDetector{}, Options{}, testLogger())

	_, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.ErrorIs(t, err, openErr)
	assert.EqualError(t, err, "Failed to process PDF: no such file")
}

func TestScratchImagePath_Unique(t *testing.T) {
	a := ScratchImagePath("/tmp/uploads/req-1/a.pdf")
	b := ScratchImagePath("/tmp/uploads/req-1/a.pdf")

	assert.NotEqual(t, a, b)
	assert.Equal(t, "/tmp/uploads/req-1", filepath.Dir(a))
	assert.True(t, strings.HasPrefix(filepath.Base(a), domain.ScratchImagePrefix))
	assert.Equal(t, domain.ScratchImageExt, filepath.Ext(a))
}

func TestScan_UnreadableScratchImage(t *testing.T) {
	dir := t.TempDir()
	doc := &fakeDocument{pages: 1, page: testutil.BlankImage(10, 10)}
	det := &fakeDetector{}
	s := NewScanner(&fakeRenderer{doc: doc}, det, Options{}, testLogger())
	s.loadImage = func(string) (image.Image, error) {
		return nil, errors.New("png: invalid format")
	}

	_, err := s.Scan(context.Background(), filepath.Join(dir, "in.pdf"))

	var perr *ProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ReasonReadImage, perr.Reason)
	assert.EqualError(t, err, "Failed to process PDF: Could not read the rendered image")
	assert.Zero(t, det.calls)
	assert.True(t, doc.closed)
	assert.Empty(t, dirEntries(t, dir))
}

func TestScan_ScratchImageWriteFailure(t *testing.T) {
	dir := t.TempDir()
	// png.Encode rejects an image with no pixels.
	doc := &fakeDocument{pages: 1, page: image.NewRGBA(image.Rect(0, 0, 0, 0))}
	det := &fakeDetector{}
	s := NewScanner(&fakeRenderer{doc: doc}, det, Options{}, testLogger())

	_, err := s.Scan(context.Background(), filepath.Join(dir, "in.pdf"))

	var perr *ProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ReasonWriteImage, perr.Reason)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to process PDF: failed to encode scratch image:"), err.Error())
	assert.Zero(t, det.calls)
	assert.True(t, doc.closed)
	assert.Empty(t, dirEntries(t, dir))
}
