package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("domain: not found")
	ErrUnknownFeature      = errors.New("domain: unknown feature")
	ErrUnknownGenre        = errors.New("domain: unknown genre")
	ErrUnfilterableFeature = errors.New("domain: feature has no range filter")
	ErrInvalidAxis         = errors.New("domain: feature cannot be used as y axis")
	ErrMissingColumns      = errors.New("domain: missing required columns")
	ErrEmptySource         = errors.New("domain: source has no header row")
)

// UnknownFeatureError names the feature that failed lookup.
type UnknownFeatureError struct {
	Name string
}

func (e *UnknownFeatureError) Error() string {
	return fmt.Sprintf("domain: unknown feature %q", e.Name)
}

func (e *UnknownFeatureError) Is(target error) bool {
	return target == ErrUnknownFeature
}

// MissingColumnsError lists the load-boundary columns absent from a source.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	if len(e.Columns) == 0 {
		return ErrMissingColumns.Error()
	}
	return fmt.Sprintf("domain: missing required columns: %s", strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}
