package domain

func track(name, genre string, pop, dance, energy, valence float64) Track {
	return Track{
		TrackName: name,
		Artists:   "Artist " + name,
		Genre:     genre,
		Features: AudioFeatures{
			Popularity:   pop,
			Danceability: dance,
			Energy:       energy,
			Valence:      valence,
		},
	}
}

func sampleTracks() []Track {
	return []Track{
		track("a", "pop", 70, 0.8, 0.5, 0.6),
		track("b", "rock", 40, 0.3, 0.9, 0.4),
		track("c", "jazz", 20, 0.5, 0.2, 0.7),
		track("d", "pop", 90, 0.9, 0.7, 0.9),
		track("e", "rock", 55, 0.4, 0.6, 0.1),
		track("f", "jazz", 10, 0.6, 0.3, 0.5),
	}
}

func names(tracks []Track) []string {
	out := make([]string, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, t.TrackName)
	}
	return out
}
