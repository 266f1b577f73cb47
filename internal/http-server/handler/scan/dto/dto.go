package dto

import "pdf-qr-scanner/internal/domain"

// ResultResponse is one element of the /upload response array. Exactly one of
// QRData and Error is present.
type ResultResponse struct {
	Filename string  `json:"filename"`
	Status   string  `json:"status"`
	QRData   *string `json:"qr_data,omitempty"`
	Error    *string `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func FromRecord(r domain.ResultRecord) ResultResponse {
	resp := ResultResponse{
		Filename: r.Filename,
		Status:   string(r.Status),
	}

	if r.Status == domain.StatusSuccess {
		data := r.QRData
		resp.QRData = &data
	} else {
		msg := r.Error
		resp.Error = &msg
	}

	return resp
}

func FromRecords(records []domain.ResultRecord) []ResultResponse {
	out := make([]ResultResponse, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return out
}
