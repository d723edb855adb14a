package domain

// Dataset is the full, load-time working set. It is never mutated after
// construction; accessors hand out copies.
type Dataset struct {
	tracks []Track
	genres []string
	index  map[string]int
}

// NewDataset takes ownership of tracks and derives the genre registry.
func NewDataset(tracks []Track) *Dataset {
	genres := DistinctGenres(tracks)
	index := make(map[string]int, len(genres))
	for i, g := range genres {
		index[g] = i
	}
	return &Dataset{tracks: tracks, genres: genres, index: index}
}

// Len returns the number of tracks.
func (d *Dataset) Len() int { return len(d.tracks) }

// Tracks returns a copy of the tracks in load order.
func (d *Dataset) Tracks() []Track {
	out := make([]Track, len(d.tracks))
	copy(out, d.tracks)
	return out
}

// Genres returns the sorted distinct genres.
func (d *Dataset) Genres() []string {
	out := make([]string, len(d.genres))
	copy(out, d.genres)
	return out
}

// GenreIndex returns the ordinal of g in the sorted genre list.
func (d *Dataset) GenreIndex(g string) (int, bool) {
	i, ok := d.index[g]
	return i, ok
}

// HasGenre reports whether g occurs in the dataset.
func (d *Dataset) HasGenre(g string) bool {
	_, ok := d.index[g]
	return ok
}

// AllGenres returns a set holding every genre in the dataset.
func (d *Dataset) AllGenres() GenreSet {
	return NewGenreSet(d.genres...)
}

// view exposes the backing slice to in-package pure functions that only read.
func (d *Dataset) view() []Track { return d.tracks }
