package domain

// ChangeKind tells the draw layer how much of the plot a transition affects.
type ChangeKind string

const (
	// ChangeInit is the first render of a view.
	ChangeInit ChangeKind = "init"
	// ChangeRefilter replaces the plotted point set.
	ChangeRefilter ChangeKind = "refilter"
	// ChangeReposition moves every point; the coordinate space changed.
	ChangeReposition ChangeKind = "reposition"
	// ChangeRestyle only changes which points are emphasised.
	ChangeRestyle ChangeKind = "restyle"
)

// ViewState is the complete derived state of one explorer view. Transitions
// return a new ViewState and leave the receiver usable.
type ViewState struct {
	Spec      FilterSpec
	Mapper    Mapper
	Filtered  []Track
	Selection Selection
	Stats     Stats
	Revision  uint64
	Change    ChangeKind
}

// InitialState builds the state of a fresh view: no genres checked, full
// ranges, y on DefaultYFeature, no brush.
func InitialState(d *Dataset, plot Plot) (ViewState, error) {
	m, err := NewMapper(XFeature, DefaultYFeature, plot)
	if err != nil {
		return ViewState{}, err
	}
	s := ViewState{Spec: DefaultFilterSpec(), Mapper: m, Change: ChangeInit}
	s.Filtered = FilterDataset(d, s.Spec)
	s.Selection = NoSelection()
	s.Stats = Summarize(s.Filtered)
	return s, nil
}

// ApplyFilter refilters d with spec. Any selection was computed against the
// old filtered set, so it is cleared.
func (s ViewState) ApplyFilter(d *Dataset, spec FilterSpec) ViewState {
	s.Spec = spec
	s.Filtered = FilterDataset(d, spec)
	s.Selection = NoSelection()
	s.Stats = Summarize(s.Filtered)
	return s.bump(ChangeRefilter)
}

// ApplyYAxis moves the y axis to feature f. The brush rectangle is not
// reinterpreted in the new coordinate space; it is cleared.
func (s ViewState) ApplyYAxis(f Feature) (ViewState, error) {
	if !IsYAxisChoice(f) {
		if _, err := LookupFeature(f); err != nil {
			return s, err
		}
		return s, ErrInvalidAxis
	}
	m, err := s.Mapper.WithY(f)
	if err != nil {
		return s, err
	}
	s.Mapper = m
	s.Selection = NoSelection()
	s.Stats = Summarize(s.Filtered)
	return s.bump(ChangeReposition), nil
}

// ApplyBrush selects the filtered tracks inside rect; nil clears.
func (s ViewState) ApplyBrush(rect *Rect) ViewState {
	s.Selection = Select(s.Filtered, rect, s.Mapper)
	s.Stats = Summarize(ActiveSubset(s.Filtered, s.Selection))
	return s.bump(ChangeRestyle)
}

// YFeature returns the current y-axis feature.
func (s ViewState) YFeature() Feature { return s.Mapper.Y.Feature }

func (s ViewState) bump(c ChangeKind) ViewState {
	s.Revision++
	s.Change = c
	return s
}

// PlotPoint is what the draw layer needs to render one mark.
type PlotPoint struct {
	Key      string        `json:"key"`
	Track    string        `json:"track_name"`
	Artists  string        `json:"artists"`
	Genre    string        `json:"genre"`
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Selected bool          `json:"selected"`
	Features AudioFeatures `json:"features"`
}

// AxisView describes one axis for the draw layer.
type AxisView struct {
	Feature Feature   `json:"feature"`
	Label   string    `json:"label"`
	Domain  Range     `json:"domain"`
	Pixels  Range     `json:"pixels"`
	Ticks   []float64 `json:"ticks"`
}

// View is an immutable snapshot of a ViewState.
type View struct {
	Revision        uint64      `json:"revision"`
	Change          ChangeKind  `json:"change"`
	Spec            FilterSpec  `json:"filter"`
	X               AxisView    `json:"x_axis"`
	Y               AxisView    `json:"y_axis"`
	Plot            Plot        `json:"plot"`
	Brush           *Rect       `json:"brush"`
	SelectionActive bool        `json:"selection_active"`
	FilteredCount   int         `json:"filtered_count"`
	SelectedCount   int         `json:"selected_count"`
	Stats           Stats       `json:"stats"`
	Points          []PlotPoint `json:"points,omitempty"`
}

// Snapshot freezes s. Points are included only when withPoints is set.
func (s ViewState) Snapshot(withPoints bool) View {
	v := View{
		Revision:        s.Revision,
		Change:          s.Change,
		Spec:            s.Spec,
		X:               axisView(s.Mapper.X),
		Y:               axisView(s.Mapper.Y),
		Plot:            s.Mapper.Plot,
		SelectionActive: s.Selection.Active(),
		FilteredCount:   len(s.Filtered),
		SelectedCount:   s.Selection.Len(),
		Stats:           s.Stats,
	}
	if r, ok := s.Selection.Rect(); ok {
		v.Brush = &r
	}
	if !withPoints {
		return v
	}

	v.Points = make([]PlotPoint, 0, len(s.Filtered))
	for _, t := range s.Filtered {
		x, y := s.Mapper.Point(t)
		v.Points = append(v.Points, PlotPoint{
			Key:      t.Key().String(),
			Track:    t.TrackName,
			Artists:  t.Artists,
			Genre:    t.Genre,
			X:        x,
			Y:        y,
			Selected: v.Brush != nil && v.Brush.Contains(x, y),
			Features: t.Features,
		})
	}
	return v
}

func axisView(a Axis) AxisView {
	return AxisView{
		Feature: a.Feature,
		Label:   a.Label,
		Domain:  a.Domain,
		Pixels:  Range{Min: a.From, Max: a.To},
		Ticks:   a.Ticks(),
	}
}
