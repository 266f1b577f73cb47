package router

import (
	"net/http"

	"pdf-qr-scanner/internal/http-server/handler/page"
	"pdf-qr-scanner/internal/http-server/handler/scan"
	"pdf-qr-scanner/internal/http-server/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	PageHandler *page.PageHandler
	ScanHandler *scan.ScanHandler
	MaxBytes    int64
}

func SetupRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Get("/", h.PageHandler.Index)

	r.With(middleware.BodyLimit(h.MaxBytes)).Post("/upload", h.ScanHandler.Upload)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	return r
}
