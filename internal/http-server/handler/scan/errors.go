package scan

import (
	"errors"

	"pdf-qr-scanner/internal/domain"
)

var (
	ErrNoFilePart   = errors.New(domain.MsgNoFilePart)
	ErrFileTooLarge = errors.New(domain.MsgFileTooLarge)
)
