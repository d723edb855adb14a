package ports

import (
	"context"
	"time"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
)

// CatalogEntry describes one sampled dataset stored in the catalog.
type CatalogEntry struct {
	Fingerprint string
	Source      string
	Target      int
	RawRows     int
	StoredAt    time.Time
}

// CatalogRepository caches sampled datasets so a restart can skip reading and
// sampling the source again.
type CatalogRepository interface {
	// LoadSample returns the tracks stored for fingerprint and target, or
	// domain.ErrNotFound.
	LoadSample(ctx context.Context, fingerprint string, target int) (CatalogEntry, []domain.Track, error)
	SaveSample(ctx context.Context, entry CatalogEntry, tracks []domain.Track) error
}
