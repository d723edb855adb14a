// Package app wires configuration, adapters and services into runnable
// entrypoints shared by cmd/api and cmd/trackscope.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ewilliams-labs/trackscope/internal/adapters/csvsource"
	"github.com/ewilliams-labs/trackscope/internal/adapters/render"
	"github.com/ewilliams-labs/trackscope/internal/adapters/rest"
	"github.com/ewilliams-labs/trackscope/internal/adapters/sqlite"
	"github.com/ewilliams-labs/trackscope/internal/config"
	"github.com/ewilliams-labs/trackscope/internal/core/domain"
	"github.com/ewilliams-labs/trackscope/internal/core/ports"
	"github.com/ewilliams-labs/trackscope/internal/core/services"
	"github.com/ewilliams-labs/trackscope/internal/worker"
)

// fetchTimeout bounds a remote dataset download.
const fetchTimeout = 2 * time.Minute

// Loader builds the dataset loader for cfg. The returned close function
// releases the catalog and is never nil.
func Loader(cfg *config.Config, logger *slog.Logger) (*services.Loader, func() error, error) {
	source, err := csvsource.New(cfg.Dataset.Path, cfg.Dataset.URL, &http.Client{Timeout: fetchTimeout})
	if err != nil {
		return nil, nil, err
	}

	var catalog ports.CatalogRepository
	closeFn := func() error { return nil }
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := sqlite.NewAdapter(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize catalog: %w", err)
		}
		catalog = db
		closeFn = db.Close
	case config.DriverNone:
	default:
		return nil, nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}

	return services.NewLoader(source, catalog, cfg.Dataset.SampleTarget, logger), closeFn, nil
}

// LoadDataset loads the dataset through the catalog cache.
func LoadDataset(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*domain.Dataset, error) {
	loader, closeFn, err := Loader(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return loader.Load(ctx)
}

// Plot returns the configured plot size.
func Plot(cfg *config.Config) domain.Plot {
	return domain.Plot{Width: cfg.Plot.Width, Height: cfg.Plot.Height}
}

// viewLogger reports every view transition at debug level.
func viewLogger(logger *slog.Logger) ports.ViewObserver {
	logger = logger.With("component", "view")
	return ports.ObserverFunc(func(sessionID string, v domain.View) {
		logger.Debug("view changed",
			"session", sessionID,
			"change", v.Change,
			"revision", v.Revision,
			"filtered", v.FilteredCount,
			"selected", v.SelectedCount)
	})
}

// Serve loads the dataset and runs the HTTP server until ctx is cancelled.
func Serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	dataset, err := LoadDataset(ctx, cfg, logger)
	if err != nil {
		return err
	}

	palette := render.NewPalette(dataset.Genres())
	sessions := services.NewSessions(dataset, Plot(cfg), logger, viewLogger(logger))
	sessions.SetLimits(services.SessionLimits{
		MaxSessions: cfg.Server.MaxSessions,
		IdleTTL:     cfg.SessionIdleTTL(),
	})
	go sessions.RunJanitor(ctx, janitorInterval(cfg.SessionIdleTTL()))

	pool := worker.NewPool(cfg.Export.Dir, palette, cfg.Export.QueueSize, logger)
	pool.Start(cfg.Export.Workers)
	defer pool.Stop()

	handler := rest.NewHandler(sessions, palette, pool, logger)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout(),
	}

	logger.Info("trackscope api listening",
		"addr", cfg.Server.Addr,
		"tracks", dataset.Len(),
		"genres", len(dataset.Genres()))

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// janitorInterval sweeps a few times per idle period, at most once a minute.
func janitorInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	return min(ttl/4, time.Minute)
}
