package domain

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/stat"
)

// Placeholder is displayed in place of a statistic that has no value.
const Placeholder = "-"

// Mean is an arithmetic mean that may be undefined (empty input). It never
// carries NaN.
type Mean struct {
	Value float64
	Valid bool
}

// Format renders the mean with two decimals, or Placeholder.
func (m Mean) Format() string {
	if !m.Valid {
		return Placeholder
	}
	return fmt.Sprintf("%.2f", m.Value)
}

// MarshalJSON encodes an undefined mean as null.
func (m Mean) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// GenreCount is the occurrence count of one genre.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

func (g *GenreCount) String() string {
	if g == nil {
		return Placeholder
	}
	return fmt.Sprintf("%s (%d)", g.Genre, g.Count)
}

// Stats summarises an active subset.
type Stats struct {
	Count            int          `json:"count"`
	MeanDanceability Mean         `json:"mean_danceability"`
	MeanEnergy       Mean         `json:"mean_energy"`
	MeanValence      Mean         `json:"mean_valence"`
	TopGenre         *GenreCount  `json:"top_genre"`
	GenreCounts      []GenreCount `json:"genre_counts"`
}

// CountLabel renders Count with thousands separators.
func (s Stats) CountLabel() string {
	return humanize.Comma(int64(s.Count))
}

// Summarize computes count, feature means and the modal genre of tracks.
// Genre ties go to the genre that occurs first in tracks.
func Summarize(tracks []Track) Stats {
	st := Stats{Count: len(tracks), GenreCounts: []GenreCount{}}
	if len(tracks) == 0 {
		return st
	}

	dance := make([]float64, len(tracks))
	energy := make([]float64, len(tracks))
	valence := make([]float64, len(tracks))
	order := make(map[string]int)
	for i, t := range tracks {
		dance[i] = t.Features.Danceability
		energy[i] = t.Features.Energy
		valence[i] = t.Features.Valence

		idx, ok := order[t.Genre]
		if !ok {
			idx = len(st.GenreCounts)
			order[t.Genre] = idx
			st.GenreCounts = append(st.GenreCounts, GenreCount{Genre: t.Genre})
		}
		st.GenreCounts[idx].Count++
	}

	st.MeanDanceability = Mean{Value: stat.Mean(dance, nil), Valid: true}
	st.MeanEnergy = Mean{Value: stat.Mean(energy, nil), Valid: true}
	st.MeanValence = Mean{Value: stat.Mean(valence, nil), Valid: true}

	ranked := make([]GenreCount, len(st.GenreCounts))
	copy(ranked, st.GenreCounts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	top := ranked[0]
	st.TopGenre = &top
	return st
}
