package domain

import "fmt"

// Range is an inclusive [Min, Max] interval. A crossed range (Min > Max) is
// kept as given and matches nothing.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FullRange covers every normalised feature value.
var FullRange = Range{Min: 0, Max: 1}

// RangeFromPercent converts the 0-100 integer control scale to a feature range.
func RangeFromPercent(min, max int) Range {
	return Range{Min: float64(min) / 100, Max: float64(max) / 100}
}

// Contains reports whether v lies within r, inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Crossed reports whether Min exceeds Max.
func (r Range) Crossed() bool { return r.Min > r.Max }

func (r Range) String() string {
	return fmt.Sprintf("%.2f-%.2f", r.Min, r.Max)
}

// FilterSpec is the conjunctive predicate configuration. An empty Genres set
// means no genre restriction.
type FilterSpec struct {
	Genres  GenreSet `json:"genres"`
	Dance   Range    `json:"danceability"`
	Energy  Range    `json:"energy"`
	Valence Range    `json:"valence"`
}

// DefaultFilterSpec is the spec of a fresh view: no genres checked and full
// ranges.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		Genres:  NewGenreSet(),
		Dance:   FullRange,
		Energy:  FullRange,
		Valence: FullRange,
	}
}

// ResetFilterSpec is the spec produced by the reset action: every known genre
// checked and full ranges.
func ResetFilterSpec(all GenreSet) FilterSpec {
	spec := DefaultFilterSpec()
	spec.Genres = all
	return spec
}

// RangeFilteredFeatures lists the features that carry a range filter.
var RangeFilteredFeatures = []Feature{Danceability, Energy, Valence}

// Range returns the range configured for f.
func (s FilterSpec) Range(f Feature) (Range, error) {
	switch f {
	case Danceability:
		return s.Dance, nil
	case Energy:
		return s.Energy, nil
	case Valence:
		return s.Valence, nil
	}
	return Range{}, fmt.Errorf("%w: %s", ErrUnfilterableFeature, f)
}

// WithRange returns a copy of s with the range of f replaced.
func (s FilterSpec) WithRange(f Feature, r Range) (FilterSpec, error) {
	switch f {
	case Danceability:
		s.Dance = r
	case Energy:
		s.Energy = r
	case Valence:
		s.Valence = r
	default:
		return s, fmt.Errorf("%w: %s", ErrUnfilterableFeature, f)
	}
	return s, nil
}

// Matches reports whether t passes every predicate of s.
func (s FilterSpec) Matches(t Track) bool {
	if !s.Genres.Empty() && !s.Genres.Contains(t.Genre) {
		return false
	}
	return s.Dance.Contains(t.Features.Danceability) &&
		s.Energy.Contains(t.Features.Energy) &&
		s.Valence.Contains(t.Features.Valence)
}

// Filter returns the tracks that match spec, in input order. It never
// mutates tracks.
func Filter(tracks []Track, spec FilterSpec) []Track {
	out := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if spec.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// FilterDataset applies spec to the full dataset.
func FilterDataset(d *Dataset, spec FilterSpec) []Track {
	return Filter(d.view(), spec)
}
