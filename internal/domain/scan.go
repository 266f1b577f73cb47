package domain

import "io"

type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusError   ResultStatus = "error"
)

// ResultRecord is the outcome for one uploaded file. QRData is meaningful for
// StatusSuccess, Error for StatusError.
type ResultRecord struct {
	Filename string
	Status   ResultStatus
	QRData   string
	Error    string
}

func SuccessRecord(filename, data string) ResultRecord {
	return ResultRecord{Filename: filename, Status: StatusSuccess, QRData: data}
}

func ErrorRecord(filename, message string) ResultRecord {
	return ResultRecord{Filename: filename, Status: StatusError, Error: message}
}

// ScanResult is the outcome of a successful pipeline run. A page without a
// QR code is still a success: Found is false and Data holds NoQRCodeFound.
type ScanResult struct {
	Data  string
	Found bool
}

// UploadedFile is one part of the files[] multipart field.
type UploadedFile struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}
