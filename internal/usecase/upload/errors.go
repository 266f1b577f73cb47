package upload

import (
	"errors"

	"pdf-qr-scanner/internal/domain"
)

var (
	ErrInvalidFileType = errors.New(domain.MsgInvalidFileType)
	ErrWorkspace       = errors.New("failed to prepare upload workspace")
)
