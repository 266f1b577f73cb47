package scan

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"pdf-qr-scanner/internal/domain"
	"pdf-qr-scanner/internal/http-server/handler/scan/dto"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/wb-go/wbf/zlog"
)

type ScanHandler struct {
	usecase  uploadUsecase
	maxBytes int64
	logger   *zlog.Zerolog
}

func NewScanHandler(usecase uploadUsecase, maxBytes int64, logger *zlog.Zerolog) *ScanHandler {
	return &ScanHandler{
		usecase:  usecase,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Upload scans every file of the files[] field and answers with one record
// per file, in the order the files were sent.
func (h *ScanHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetReqID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	// Every part is read before any file is scanned, so an oversized body is
	// rejected with nothing written to the upload directory.
	files, found, err := readFileParts(r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.logger.Warn().Str("request_id", requestID).Int64("limit", maxErr.Limit).Msg("File too large")
			h.respondError(w, http.StatusRequestEntityTooLarge, ErrFileTooLarge.Error())
			return
		}

		h.logger.Warn().Err(err).Str("request_id", requestID).Msg("No file part in the request")
		h.respondError(w, http.StatusBadRequest, ErrNoFilePart.Error())
		return
	}

	if !found {
		h.logger.Warn().Str("request_id", requestID).Msg("No file part in the request")
		h.respondError(w, http.StatusBadRequest, ErrNoFilePart.Error())
		return
	}

	results, err := h.usecase.ScanFiles(ctx, requestID, files)
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", requestID).Msg("Upload error")
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, dto.FromRecords(results))
}

// readFileParts collects the file parts of the upload field in the order they
// were sent. A part counts as a file when its Content-Disposition carries a
// filename parameter, even an empty one, which is what an empty file input
// submits. found reports whether the field had any file part at all.
func readFileParts(r *http.Request) (files []domain.UploadedFile, found bool, err error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, false, err
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return files, found, nil
		}
		if err != nil {
			return nil, false, err
		}

		if part.FormName() != domain.UploadFieldName || !isFilePart(part) {
			_, err = io.Copy(io.Discard, part)
			part.Close()
			if err != nil {
				return nil, false, err
			}
			continue
		}

		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, false, err
		}

		found = true
		files = append(files, domain.UploadedFile{
			Filename: part.FileName(),
			Size:     int64(len(data)),
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(data)), nil
			},
		})
	}
}

func isFilePart(part *multipart.Part) bool {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return false
	}
	_, ok := params["filename"]
	return ok
}

func (h *ScanHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *ScanHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, dto.ErrorResponse{Error: message})
}
