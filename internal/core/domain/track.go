package domain

// AudioFeatures holds the numeric attributes of a track. Every field has
// already been coerced, so a missing or unparseable input is 0.
type AudioFeatures struct {
	Popularity       float64 `json:"popularity"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Tempo            float64 `json:"tempo"`
	Loudness         float64 `json:"loudness"`
	Acousticness     float64 `json:"acousticness"`
	Speechiness      float64 `json:"speechiness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
}

// Track represents one analyzable track in the domain layer.
type Track struct {
	TrackName string        `json:"track_name"`
	Artists   string        `json:"artists"`
	Genre     string        `json:"genre"`
	Features  AudioFeatures `json:"features"`
}

// TrackKey identifies a track when the draw layer reconciles marks across
// re-renders. It is not guaranteed to be unique within a dataset.
type TrackKey struct {
	TrackName string
	Artists   string
}

func (k TrackKey) String() string {
	return k.TrackName + "-" + k.Artists
}

// Key returns the reconciliation key of t.
func (t Track) Key() TrackKey {
	return TrackKey{TrackName: t.TrackName, Artists: t.Artists}
}

// Value returns the numeric value of feature f. ok is false when f is not a
// known feature.
func (t Track) Value(f Feature) (v float64, ok bool) {
	switch f {
	case Popularity:
		return t.Features.Popularity, true
	case Danceability:
		return t.Features.Danceability, true
	case Energy:
		return t.Features.Energy, true
	case Valence:
		return t.Features.Valence, true
	case Tempo:
		return t.Features.Tempo, true
	case Loudness:
		return t.Features.Loudness, true
	case Acousticness:
		return t.Features.Acousticness, true
	case Speechiness:
		return t.Features.Speechiness, true
	case Instrumentalness:
		return t.Features.Instrumentalness, true
	case Liveness:
		return t.Features.Liveness, true
	}
	return 0, false
}
