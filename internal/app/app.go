package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pdf-qr-scanner/internal/config"
	"pdf-qr-scanner/internal/http-server/handler/page"
	"pdf-qr-scanner/internal/http-server/handler/scan"
	"pdf-qr-scanner/internal/http-server/router"
	"pdf-qr-scanner/internal/qr/zxing"
	"pdf-qr-scanner/internal/render/fitz"
	"pdf-qr-scanner/internal/repository/scratch/local"
	"pdf-qr-scanner/internal/usecase/scanner"
	"pdf-qr-scanner/internal/usecase/upload"

	"github.com/wb-go/wbf/zlog"
)

type App struct {
	cfg    *config.Config
	server *http.Server
	logger *zlog.Zerolog
}

func NewApp(cfg *config.Config, logger *zlog.Zerolog) (*App, error) {
	store, err := local.NewStore(cfg.Upload.Dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch store: %w", err)
	}

	removed, err := store.Sweep()
	if err != nil {
		logger.Warn().Err(err).Str("dir", cfg.Upload.Dir).Msg("Failed to sweep upload dir")
	} else if removed > 0 {
		logger.Info().Int("removed", removed).Msg("Removed stale scratch workspaces")
	}

	pdfScanner := scanner.NewScanner(
		fitz.NewRenderer(cfg.Scan.RenderDPI),
		zxing.NewDetector(),
		scanner.Options{
			QuietZone: cfg.Scan.QuietZone,
			MinWidth:  cfg.Scan.MinWidth,
		},
		logger,
	)

	uploadUsecase := upload.NewUploadUsecase(store, pdfScanner, logger)

	h := &router.Handler{
		PageHandler: page.NewPageHandler(cfg.TemplatesDir, cfg.Upload.MaxBytes, logger),
		ScanHandler: scan.NewScanHandler(uploadUsecase, cfg.Upload.MaxBytes, logger),
		MaxBytes:    cfg.Upload.MaxBytes,
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Addr,
		Handler:      router.SetupRouter(h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		cfg:    cfg,
		server: server,
		logger: logger,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Run() error {
	a.logger.Info().
		Str("addr", a.cfg.Server.Addr).
		Str("upload_dir", a.cfg.Upload.Dir).
		Int64("max_bytes", a.cfg.Upload.MaxBytes).
		Msg("Starting server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.handleSignals(cancel)

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		a.logger.Error().Err(err).Msg("Server error")
		return err
	case <-ctx.Done():
		a.logger.Info().Msg("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error().Err(err).Msg("Server shutdown failed")
		}

		a.logger.Info().Msg("Server stopped gracefully")
		return nil
	}
}

func (a *App) handleSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	a.logger.Info().Str("signal", sig.String()).Msg("Received signal")
	cancel()
}
