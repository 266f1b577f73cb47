package page

import (
	"bytes"
	"html/template"
	"net/http"
	"path/filepath"

	"pdf-qr-scanner/internal/domain"

	"github.com/wb-go/wbf/zlog"
)

const indexTemplate = "index.html"

type PageHandler struct {
	templatesDir string
	maxBytes     int64
	logger       *zlog.Zerolog
}

func NewPageHandler(templatesDir string, maxBytes int64, logger *zlog.Zerolog) *PageHandler {
	return &PageHandler{
		templatesDir: templatesDir,
		maxBytes:     maxBytes,
		logger:       logger,
	}
}

type indexData struct {
	FieldName  string
	MaxSizeMB  int64
	Extensions []string
}

// Index renders the upload page. The template is read on every request so
// edits show up without a restart.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.ParseFiles(filepath.Join(h.templatesDir, indexTemplate))
	if err != nil {
		h.logger.Error().Err(err).Msg("Error rendering index page")
		http.Error(w, domain.MsgInternalError, http.StatusInternalServerError)
		return
	}

	exts := make([]string, 0, len(domain.AllowedExtensions))
	for ext := range domain.AllowedExtensions {
		exts = append(exts, "."+ext)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, indexData{
		FieldName:  domain.UploadFieldName,
		MaxSizeMB:  h.maxBytes >> 20,
		Extensions: exts,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("Error rendering index page")
		http.Error(w, domain.MsgInternalError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write index page")
	}
}
