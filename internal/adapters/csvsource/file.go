package csvsource

import (
	"context"
	"fmt"
	"os"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
	"github.com/ewilliams-labs/trackscope/internal/core/ports"
)

var _ ports.DatasetSource = (*FileSource)(nil)

// FileSource reads the dataset from a local CSV file.
type FileSource struct {
	path string
}

// NewFileSource constructs a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// ReadRows parses the whole file.
func (s *FileSource) ReadRows(ctx context.Context) ([]domain.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("csvsource: open %s: %w", s.path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Fingerprint combines the file size and modification time.
func (s *FileSource) Fingerprint(ctx context.Context) (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("csvsource: stat %s: %w", s.path, err)
	}
	return fmt.Sprintf("file:%s:%d:%d", s.path, info.Size(), info.ModTime().UnixNano()), nil
}

// Describe returns the file path.
func (s *FileSource) Describe() string { return s.path }
