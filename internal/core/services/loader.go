package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
	"github.com/ewilliams-labs/trackscope/internal/core/ports"
)

// Loader turns a raw source into the immutable full dataset.
type Loader struct {
	source  ports.DatasetSource
	catalog ports.CatalogRepository
	target  int
	logger  *slog.Logger
}

// NewLoader constructs a Loader. catalog may be nil; target <= 0 uses
// domain.DefaultSampleTarget.
func NewLoader(source ports.DatasetSource, catalog ports.CatalogRepository, target int, logger *slog.Logger) *Loader {
	if target <= 0 {
		target = domain.DefaultSampleTarget
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		source:  source,
		catalog: catalog,
		target:  target,
		logger:  logger.With("component", "loader"),
	}
}

// Load reads, samples and coerces the source. When a catalog is configured a
// stored sample with a matching fingerprint is reused; catalog problems are
// logged and never fail the load.
func (l *Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	fingerprint := ""
	if l.catalog != nil {
		fp, err := l.source.Fingerprint(ctx)
		if err != nil {
			l.logger.Warn("fingerprint failed, skipping catalog", "source", l.source.Describe(), "error", err)
		} else {
			fingerprint = fp
			entry, tracks, err := l.catalog.LoadSample(ctx, fingerprint, l.target)
			switch {
			case err == nil:
				l.logger.Info("loaded sample from catalog",
					"source", entry.Source, "raw_rows", entry.RawRows, "sampled", len(tracks))
				if r, ok := l.source.(ports.Releaser); ok {
					r.Release()
				}
				return domain.NewDataset(tracks), nil
			case errors.Is(err, domain.ErrNotFound):
			default:
				l.logger.Warn("catalog lookup failed", "error", err)
			}
		}
	}

	dataset, rawRows, err := l.loadFromSource(ctx)
	if err != nil {
		return nil, err
	}

	if l.catalog != nil && fingerprint != "" {
		entry := ports.CatalogEntry{
			Fingerprint: fingerprint,
			Source:      l.source.Describe(),
			Target:      l.target,
			RawRows:     rawRows,
			StoredAt:    time.Now().UTC(),
		}
		if err := l.catalog.SaveSample(ctx, entry, dataset.Tracks()); err != nil {
			l.logger.Warn("catalog save failed", "error", err)
		}
	}
	return dataset, nil
}

// Refresh bypasses the catalog lookup, reloads the source and stores the new
// sample. It is used by explicit imports.
func (l *Loader) Refresh(ctx context.Context) (*domain.Dataset, error) {
	dataset, rawRows, err := l.loadFromSource(ctx)
	if err != nil {
		return nil, err
	}
	if l.catalog == nil {
		return dataset, nil
	}
	fingerprint, err := l.source.Fingerprint(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: fingerprint source: %w", err)
	}
	entry := ports.CatalogEntry{
		Fingerprint: fingerprint,
		Source:      l.source.Describe(),
		Target:      l.target,
		RawRows:     rawRows,
		StoredAt:    time.Now().UTC(),
	}
	if err := l.catalog.SaveSample(ctx, entry, dataset.Tracks()); err != nil {
		return nil, fmt.Errorf("service: store sample: %w", err)
	}
	return dataset, nil
}

func (l *Loader) loadFromSource(ctx context.Context) (*domain.Dataset, int, error) {
	rows, err := l.source.ReadRows(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service: failed to load %s: %w", l.source.Describe(), err)
	}

	sampled := domain.Sample(rows, l.target)
	tracks := make([]domain.Track, 0, len(sampled))
	for _, row := range sampled {
		tracks = append(tracks, domain.TrackFromRow(row))
	}

	l.logger.Info("loaded dataset",
		"source", l.source.Describe(),
		"raw_rows", len(rows),
		"stride", domain.SampleStride(len(rows), l.target),
		"sampled", len(tracks))
	return domain.NewDataset(tracks), len(rows), nil
}
