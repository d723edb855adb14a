package domain

import (
	"math"
	"strconv"
	"strings"
)

// RawRow is one input row keyed by column name.
type RawRow map[string]string

// Column names at the load boundary.
const (
	ColumnTrackName = "track_name"
	ColumnArtists   = "artists"
	ColumnGenre     = "track_genre"
)

// RequiredColumns are the columns a source must provide.
var RequiredColumns = []string{
	ColumnTrackName,
	ColumnArtists,
	ColumnGenre,
	string(Popularity),
	string(Danceability),
	string(Energy),
	string(Valence),
	string(Tempo),
	string(Loudness),
	string(Acousticness),
	string(Speechiness),
	string(Instrumentalness),
	string(Liveness),
}

// MissingColumns returns the required columns that header lacks, in
// RequiredColumns order.
func MissingColumns(header []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = struct{}{}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// CheckHeader returns a *MissingColumnsError when header lacks required
// columns.
func CheckHeader(header []string) error {
	if len(header) == 0 {
		return ErrEmptySource
	}
	if missing := MissingColumns(header); len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// TrackFromRow coerces a raw row into a Track. Bad numerics degrade to 0
// rather than failing the row.
func TrackFromRow(row RawRow) Track {
	return Track{
		TrackName: row[ColumnTrackName],
		Artists:   row[ColumnArtists],
		Genre:     row[ColumnGenre],
		Features: AudioFeatures{
			Popularity:       coerceFloat(row[string(Popularity)]),
			Danceability:     coerceFloat(row[string(Danceability)]),
			Energy:           coerceFloat(row[string(Energy)]),
			Valence:          coerceFloat(row[string(Valence)]),
			Tempo:            coerceFloat(row[string(Tempo)]),
			Loudness:         coerceFloat(row[string(Loudness)]),
			Acousticness:     coerceFloat(row[string(Acousticness)]),
			Speechiness:      coerceFloat(row[string(Speechiness)]),
			Instrumentalness: coerceFloat(row[string(Instrumentalness)]),
			Liveness:         coerceFloat(row[string(Liveness)]),
		},
	}
}

func coerceFloat(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}
