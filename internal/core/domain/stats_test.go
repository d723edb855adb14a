package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		tracks    []Track
		wantCount int
		wantDance string
		wantTop   string
	}{
		{
			name:      "empty input uses placeholders",
			tracks:    nil,
			wantCount: 0,
			wantDance: Placeholder,
			wantTop:   Placeholder,
		},
		{
			name:      "single track",
			tracks:    []Track{track("a", "pop", 70, 0.8, 0.5, 0.6)},
			wantCount: 1,
			wantDance: "0.80",
			wantTop:   "pop (1)",
		},
		{
			name:      "modal genre",
			tracks:    sampleTracks()[:5],
			wantCount: 5,
			wantDance: "0.58",
			wantTop:   "pop (2)",
		},
		{
			name: "tie goes to first occurrence",
			tracks: []Track{
				track("a", "rock", 1, 0.1, 0.1, 0.1),
				track("b", "jazz", 1, 0.1, 0.1, 0.1),
				track("c", "jazz", 1, 0.1, 0.1, 0.1),
				track("d", "rock", 1, 0.1, 0.1, 0.1),
			},
			wantCount: 4,
			wantDance: "0.10",
			wantTop:   "rock (2)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := Summarize(tc.tracks)
			if st.Count != tc.wantCount {
				t.Fatalf("Count = %d, want %d", st.Count, tc.wantCount)
			}
			if got := st.MeanDanceability.Format(); got != tc.wantDance {
				t.Fatalf("MeanDanceability = %q, want %q", got, tc.wantDance)
			}
			if got := st.TopGenre.String(); got != tc.wantTop {
				t.Fatalf("TopGenre = %q, want %q", got, tc.wantTop)
			}
		})
	}
}

func TestSummarize_Consistency(t *testing.T) {
	tracks := sampleTracks()
	st := Summarize(tracks)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, tr := range tracks {
		lo = math.Min(lo, tr.Features.Danceability)
		hi = math.Max(hi, tr.Features.Danceability)
	}
	if v := st.MeanDanceability.Value; v < lo || v > hi {
		t.Fatalf("mean %v outside [%v, %v]", v, lo, hi)
	}

	sum, maxCount := 0, 0
	for _, gc := range st.GenreCounts {
		sum += gc.Count
		if gc.Count > maxCount {
			maxCount = gc.Count
		}
	}
	if sum != st.Count {
		t.Fatalf("genre counts sum to %d, want %d", sum, st.Count)
	}
	if st.TopGenre == nil || st.TopGenre.Count != maxCount {
		t.Fatalf("top genre %v does not hold the maximum count %d", st.TopGenre, maxCount)
	}
}

func TestStats_JSONHasNoNaN(t *testing.T) {
	b, err := json.Marshal(Summarize(nil))
	if err != nil {
		t.Fatalf("marshal empty stats: %v", err)
	}
	want := `{"count":0,"mean_danceability":null,"mean_energy":null,"mean_valence":null,"top_genre":null,"genre_counts":[]}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}

func TestStats_CountLabel(t *testing.T) {
	if got := (Stats{Count: 10000}).CountLabel(); got != "10,000" {
		t.Fatalf("CountLabel = %q", got)
	}
}
