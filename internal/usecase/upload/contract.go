package upload

import (
	"context"

	"pdf-qr-scanner/internal/domain"
	"pdf-qr-scanner/internal/repository/scratch"
)

type scratchStore interface {
	NewWorkspace(requestID string) (scratch.Workspace, error)
}

type pdfScanner interface {
	Scan(ctx context.Context, pdfPath string) (domain.ScanResult, error)
}
