package ports

import (
	"context"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
)

// DatasetSource yields the raw rows of a tabular track source.
type DatasetSource interface {
	// ReadRows reads every row. Implementations fail with
	// domain.ErrMissingColumns or domain.ErrEmptySource when the header is
	// unusable.
	ReadRows(ctx context.Context) ([]domain.RawRow, error)
	// Fingerprint identifies the current content of the source.
	Fingerprint(ctx context.Context) (string, error)
	// Describe names the source for logs.
	Describe() string
}

// Releaser is implemented by sources that hold content fetched by
// Fingerprint until ReadRows. Release drops it when ReadRows will not run.
type Releaser interface {
	Release()
}
