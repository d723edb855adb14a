package domain

import (
	"encoding/json"
	"sort"
)

// GenreSet is a set of genre names. Methods that change membership return a
// new set and leave the receiver untouched.
type GenreSet struct {
	m map[string]struct{}
}

// NewGenreSet builds a set from genres.
func NewGenreSet(genres ...string) GenreSet {
	m := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		m[g] = struct{}{}
	}
	return GenreSet{m: m}
}

// Len returns the number of genres in s.
func (s GenreSet) Len() int { return len(s.m) }

// Empty reports whether s has no members, which filtering treats as "no
// genre restriction".
func (s GenreSet) Empty() bool { return len(s.m) == 0 }

// Contains reports whether g is in s.
func (s GenreSet) Contains(g string) bool {
	_, ok := s.m[g]
	return ok
}

// With returns s plus g.
func (s GenreSet) With(g string) GenreSet {
	out := s.clone(1)
	out.m[g] = struct{}{}
	return out
}

// Without returns s minus g.
func (s GenreSet) Without(g string) GenreSet {
	out := s.clone(0)
	delete(out.m, g)
	return out
}

// Toggle flips the membership of g.
func (s GenreSet) Toggle(g string) GenreSet {
	if s.Contains(g) {
		return s.Without(g)
	}
	return s.With(g)
}

// Sorted returns the members in ascending order.
func (s GenreSet) Sorted() []string {
	out := make([]string, 0, len(s.m))
	for g := range s.m {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether s and o have the same members.
func (s GenreSet) Equal(o GenreSet) bool {
	if s.Len() != o.Len() {
		return false
	}
	for g := range s.m {
		if !o.Contains(g) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a sorted list.
func (s GenreSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes a list of genres.
func (s *GenreSet) UnmarshalJSON(b []byte) error {
	var genres []string
	if err := json.Unmarshal(b, &genres); err != nil {
		return err
	}
	*s = NewGenreSet(genres...)
	return nil
}

func (s GenreSet) clone(extra int) GenreSet {
	m := make(map[string]struct{}, len(s.m)+extra)
	for g := range s.m {
		m[g] = struct{}{}
	}
	return GenreSet{m: m}
}

// DistinctGenres returns the sorted distinct genres of tracks.
func DistinctGenres(tracks []Track) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range tracks {
		if _, ok := seen[t.Genre]; ok {
			continue
		}
		seen[t.Genre] = struct{}{}
		out = append(out, t.Genre)
	}
	sort.Strings(out)
	return out
}
