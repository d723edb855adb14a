package render

import (
	"fmt"
	"strings"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
)

// Tooltip returns the hover text of a track, one line per entry.
func Tooltip(t domain.Track) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n%s\n\n", t.TrackName, t.Artists, t.Genre)
	fmt.Fprintf(&b, "Danceability: %.2f\n", t.Features.Danceability)
	fmt.Fprintf(&b, "Energy: %.2f\n", t.Features.Energy)
	fmt.Fprintf(&b, "Valence: %.2f\n", t.Features.Valence)
	fmt.Fprintf(&b, "Tempo: %.0f BPM\n", t.Features.Tempo)
	fmt.Fprintf(&b, "Popularity: %g", t.Features.Popularity)
	return b.String()
}

// Title returns the chart title for the current axes.
func Title(v domain.View) string {
	return fmt.Sprintf("%s vs. %s", v.Y.Label, v.X.Label)
}

func pointTrack(p domain.PlotPoint) domain.Track {
	return domain.Track{TrackName: p.Track, Artists: p.Artists, Genre: p.Genre, Features: p.Features}
}

// values returns the feature values of p on the view's axes.
func values(v domain.View, p domain.PlotPoint) (x, y float64) {
	t := pointTrack(p)
	x, _ = t.Value(v.X.Feature)
	y, _ = t.Value(v.Y.Feature)
	return x, y
}
