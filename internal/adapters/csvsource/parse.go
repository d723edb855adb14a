// Package csvsource reads the track dataset from a CSV file or an HTTP URL.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
)

// Parse reads a header row followed by data rows. Extra columns are kept in
// the raw rows; short rows leave their missing cells empty.
func Parse(r io.Reader) ([]domain.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrEmptySource
	}
	if err != nil {
		return nil, fmt.Errorf("csvsource: read header: %w", err)
	}
	header = cleanHeader(header)
	if err := domain.CheckHeader(header); err != nil {
		return nil, err
	}

	var rows []domain.RawRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvsource: read row %d: %w", len(rows)+1, err)
		}
		row := make(domain.RawRow, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cleanHeader trims names and drops a UTF-8 byte order mark on the first one.
func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}
