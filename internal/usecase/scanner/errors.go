package scanner

import (
	"errors"
	"fmt"
)

type FailureReason string

const (
	ReasonOpen       FailureReason = "open"
	ReasonNoPages    FailureReason = "no_pages"
	ReasonRender     FailureReason = "render"
	ReasonWriteImage FailureReason = "write_image"
	ReasonReadImage  FailureReason = "read_image"
	ReasonDecode     FailureReason = "decode"
)

var ErrUnreadableImage = errors.New("Could not read the rendered image")

// ProcessingError is returned by Scan for every failure. Its message always
// starts with "Failed to process PDF: ".
type ProcessingError struct {
	Reason FailureReason
	Err    error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("Failed to process PDF: %v", e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

func newProcessingError(reason FailureReason, err error) *ProcessingError {
	return &ProcessingError{Reason: reason, Err: err}
}
