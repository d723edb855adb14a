package domain

// Feature names a numeric track attribute. The string value matches the
// column name at the load boundary.
type Feature string

const (
	Popularity       Feature = "popularity"
	Danceability     Feature = "danceability"
	Energy           Feature = "energy"
	Valence          Feature = "valence"
	Tempo            Feature = "tempo"
	Loudness         Feature = "loudness"
	Acousticness     Feature = "acousticness"
	Speechiness      Feature = "speechiness"
	Instrumentalness Feature = "instrumentalness"
	Liveness         Feature = "liveness"
)

// XFeature is the permanently fixed x-axis feature.
const XFeature = Popularity

// DefaultYFeature is the y-axis feature of a fresh view.
const DefaultYFeature = Energy

// FeatureInfo is static metadata for a feature. Min and Max form the declared
// range used as the axis domain; they are configuration, never derived from
// the data.
type FeatureInfo struct {
	Name      Feature `json:"name"`
	Label     string  `json:"label"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Plottable bool    `json:"plottable"`
}

// featureTable is ordered as the y-axis selector lists it.
var featureTable = [...]FeatureInfo{
	{Name: Danceability, Label: "Danceability", Min: 0, Max: 1, Plottable: true},
	{Name: Energy, Label: "Energy", Min: 0, Max: 1, Plottable: true},
	{Name: Valence, Label: "Valence (Positivity)", Min: 0, Max: 1, Plottable: true},
	{Name: Tempo, Label: "Tempo (BPM)", Min: 0, Max: 250, Plottable: true},
	{Name: Loudness, Label: "Loudness (dB)", Min: -60, Max: 5, Plottable: true},
	{Name: Acousticness, Label: "Acousticness", Min: 0, Max: 1, Plottable: true},
	{Name: Speechiness, Label: "Speechiness", Min: 0, Max: 1, Plottable: true},
	{Name: Popularity, Label: "Popularity", Min: 0, Max: 100, Plottable: true},
	{Name: Instrumentalness, Label: "Instrumentalness", Min: 0, Max: 1},
	{Name: Liveness, Label: "Liveness", Min: 0, Max: 1},
}

// LookupFeature returns the metadata for name.
func LookupFeature(name Feature) (FeatureInfo, error) {
	for _, info := range featureTable {
		if info.Name == name {
			return info, nil
		}
	}
	return FeatureInfo{}, &UnknownFeatureError{Name: string(name)}
}

// ParseFeature is LookupFeature for raw strings coming from a control surface.
func ParseFeature(name string) (Feature, error) {
	info, err := LookupFeature(Feature(name))
	if err != nil {
		return "", err
	}
	return info.Name, nil
}

// Features returns every registered feature, plottable ones first.
func Features() []FeatureInfo {
	out := make([]FeatureInfo, len(featureTable))
	copy(out, featureTable[:])
	return out
}

// PlottableFeatures returns the eight features that may be placed on an axis.
func PlottableFeatures() []FeatureInfo {
	out := make([]FeatureInfo, 0, len(featureTable))
	for _, info := range featureTable {
		if info.Plottable {
			out = append(out, info)
		}
	}
	return out
}

// YAxisChoices returns the plottable features excluding the fixed x feature.
func YAxisChoices() []FeatureInfo {
	all := PlottableFeatures()
	out := all[:0]
	for _, info := range all {
		if info.Name != XFeature {
			out = append(out, info)
		}
	}
	return out
}

// IsYAxisChoice reports whether f may be selected as the y-axis feature.
func IsYAxisChoice(f Feature) bool {
	for _, info := range YAxisChoices() {
		if info.Name == f {
			return true
		}
	}
	return false
}
