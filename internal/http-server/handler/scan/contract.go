package scan

import (
	"context"

	"pdf-qr-scanner/internal/domain"
)

type uploadUsecase interface {
	ScanFiles(ctx context.Context, requestID string, files []domain.UploadedFile) ([]domain.ResultRecord, error)
}
