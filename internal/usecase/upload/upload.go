package upload

import (
	"context"
	"fmt"

	"pdf-qr-scanner/internal/domain"
	"pdf-qr-scanner/internal/repository/scratch"

	"github.com/wb-go/wbf/zlog"
)

type UploadUsecase struct {
	store   scratchStore
	scanner pdfScanner
	logger  *zlog.Zerolog
}

func NewUploadUsecase(store scratchStore, scanner pdfScanner, logger *zlog.Zerolog) *UploadUsecase {
	return &UploadUsecase{
		store:   store,
		scanner: scanner,
		logger:  logger,
	}
}

// ScanFiles processes files in order and returns one record per file. An error
// is returned only when the request as a whole cannot be processed.
func (u *UploadUsecase) ScanFiles(ctx context.Context, requestID string, files []domain.UploadedFile) ([]domain.ResultRecord, error) {
	ws, err := u.store.NewWorkspace(requestID)
	if err != nil {
		u.logger.Error().Err(err).Str("request_id", requestID).Msg("Failed to create workspace")
		return nil, fmt.Errorf("%w: %v", ErrWorkspace, err)
	}
	defer ws.Close()

	results := make([]domain.ResultRecord, 0, len(files))
	for _, file := range files {
		results = append(results, u.scanFile(ctx, requestID, ws, file))
	}

	u.logger.Info().
		Str("request_id", requestID).
		Int("files", len(files)).
		Msg("Upload processed")

	return results, nil
}

func (u *UploadUsecase) scanFile(ctx context.Context, requestID string, ws scratch.Workspace, file domain.UploadedFile) domain.ResultRecord {
	if !AllowedFile(file.Filename) {
		u.logger.Warn().Str("filename", file.Filename).Str("request_id", requestID).Msg("Invalid file type")
		return domain.ErrorRecord(file.Filename, ErrInvalidFileType.Error())
	}

	filename := SecureFilename(file.Filename)

	path, err := u.save(ws, scratchName(filename), file)
	if err != nil {
		u.logger.Error().Err(err).Str("filename", filename).Str("request_id", requestID).Msg("Failed to save upload")
		return domain.ErrorRecord(filename, err.Error())
	}
	defer ws.Remove(path)

	u.logger.Debug().
		Str("filename", filename).
		Int64("size", file.Size).
		Str("request_id", requestID).
		Msg("Processing file")

	result, err := u.scanner.Scan(ctx, path)
	if err != nil {
		u.logger.Error().Err(err).Str("filename", filename).Str("request_id", requestID).Msg("Error processing file")
		return domain.ErrorRecord(filename, err.Error())
	}

	return domain.SuccessRecord(filename, result.Data)
}

func (u *UploadUsecase) save(ws scratch.Workspace, name string, file domain.UploadedFile) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer rc.Close()

	return ws.Save(name, rc)
}
