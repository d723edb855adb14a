package domain

// Rect is an axis-aligned screen-space rectangle reported by a brush gesture.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Normalize orders the corners so X0 <= X1 and Y0 <= Y1.
func (r Rect) Normalize() Rect {
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// Contains reports whether (x, y) lies within r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Selection is either "no spatial restriction" or a rectangle together with
// the tracks it captured. An active selection may hold zero tracks.
type Selection struct {
	active bool
	rect   Rect
	tracks []Track
}

// NoSelection is the selection of a view with no brush.
func NoSelection() Selection { return Selection{} }

// Selected builds an active selection.
func Selected(rect Rect, tracks []Track) Selection {
	if tracks == nil {
		tracks = []Track{}
	}
	return Selection{active: true, rect: rect, tracks: tracks}
}

// Active reports whether a rectangle restricts the view.
func (s Selection) Active() bool { return s.active }

// Rect returns the selecting rectangle; ok is false when inactive.
func (s Selection) Rect() (Rect, bool) { return s.rect, s.active }

// Tracks returns the selected tracks, nil when inactive.
func (s Selection) Tracks() []Track {
	if !s.active {
		return nil
	}
	out := make([]Track, len(s.tracks))
	copy(out, s.tracks)
	return out
}

// Len returns the number of selected tracks.
func (s Selection) Len() int { return len(s.tracks) }

// Select returns the tracks of filtered whose mapped coordinates fall in rect.
// A nil rect clears the selection.
func Select(filtered []Track, rect *Rect, m Mapper) Selection {
	if rect == nil {
		return NoSelection()
	}
	r := rect.Normalize()
	out := make([]Track, 0)
	for _, t := range filtered {
		if r.Contains(m.Point(t)) {
			out = append(out, t)
		}
	}
	return Selected(r, out)
}

// ActiveSubset is the input to the statistics aggregator: the selected
// tracks when a selection is active, otherwise the filtered set.
func ActiveSubset(filtered []Track, sel Selection) []Track {
	if sel.Active() {
		return sel.tracks
	}
	return filtered
}
