package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/warp/cashflow-lab/config"
	"github.com/warp/cashflow-lab/factory"
)

// shutdownTimeout bounds how long in-flight requests may run after a stop.
const shutdownTimeout = 30 * time.Second

// BuildCatalog returns the built-in presets plus any from the configured file.
func BuildCatalog(cfg config.ForecastConfig, logger *logrus.Logger) (*factory.Catalog, error) {
	catalog := factory.DefaultCatalog()
	if cfg.PresetsFile == "" {
		return catalog, nil
	}

	n, err := catalog.LoadYAML(cfg.PresetsFile)
	if err != nil {
		return nil, fmt.Errorf("loading presets from %s: %w", cfg.PresetsFile, err)
	}
	logger.WithFields(logrus.Fields{"path": cfg.PresetsFile, "count": n}).Info("presets loaded")
	return catalog, nil
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, logger *logrus.Logger) error {
	catalog, err := BuildCatalog(cfg.Forecast, logger)
	if err != nil {
		return err
	}

	if cfg.Forecast.PresetsFile != "" {
		reloader := NewPresetReloader(catalog, cfg.Forecast.PresetsFile, logger)
		reloader.CheckInterval = cfg.Forecast.PresetsReloadInterval.Duration
		if err := reloader.MarkCurrent(); err != nil {
			return fmt.Errorf("presets file: %w", err)
		}
		reloader.Start()
		defer reloader.Stop()
	}

	handler := NewHandler(catalog, cfg.Forecast, logger)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      NewRouter(handler, cfg.Server.AllowedOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
		IdleTimeout:  cfg.Server.IdleTimeout.Duration,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
