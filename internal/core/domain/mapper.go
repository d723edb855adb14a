package domain

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// Plot is the pixel size of the plotting area.
type Plot struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultPlot matches a 1200x500 chart less its margins.
var DefaultPlot = Plot{Width: 1020, Height: 400}

// niceTicks is the approximate tick count the domains are extended for.
const niceTicks = 10

// Axis is one linear scale from a feature's nice domain to a pixel interval.
type Axis struct {
	Feature Feature
	Label   string
	Domain  Range
	// From and To are the pixel positions of Domain.Min and Domain.Max.
	From, To float64

	lin   scale.Linear
	ticks []float64
}

func newAxis(f Feature, from, to float64) (Axis, error) {
	info, err := LookupFeature(f)
	if err != nil {
		return Axis{}, err
	}
	lin, ticks := niceLinear(info.Min, info.Max)
	return Axis{
		Feature: f,
		Label:   info.Label,
		Domain:  Range{Min: lin.Min, Max: lin.Max},
		From:    from,
		To:      to,
		lin:     lin,
		ticks:   ticks,
	}, nil
}

// niceLinear extends [lo, hi] outward to round tick increments, repeating
// until the increment settles, and returns the ticks across the result.
func niceLinear(lo, hi float64) (scale.Linear, []float64) {
	lin := scale.Linear{Min: lo, Max: hi}
	if !(hi > lo) {
		return lin, []float64{lo}
	}
	var prev float64
	for i := 0; i < 10; i++ {
		inc := tickIncrement(lin.Min, lin.Max, niceTicks)
		if inc == prev || inc == 0 || math.IsNaN(inc) {
			break
		}
		if inc > 0 {
			lin.Min = math.Floor(lin.Min/inc) * inc
			lin.Max = math.Ceil(lin.Max/inc) * inc
		} else {
			lin.Min = math.Floor(lin.Min*-inc) / -inc
			lin.Max = math.Ceil(lin.Max*-inc) / -inc
		}
		prev = inc
	}
	return lin, ticks(lin.Min, lin.Max, tickIncrement(lin.Min, lin.Max, niceTicks))
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns a 1, 2 or 5 times power-of-ten step giving about
// count ticks over [lo, hi]. Steps below 1 are returned negated and
// inverted (-10 means 0.1) so multiples stay exact.
func tickIncrement(lo, hi float64, count int) float64 {
	step := (hi - lo) / float64(count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

func ticks(lo, hi, inc float64) []float64 {
	if inc == 0 || math.IsNaN(inc) {
		return []float64{lo, hi}
	}
	var out []float64
	if inc > 0 {
		for i := math.Ceil(lo / inc); i <= math.Floor(hi/inc); i++ {
			out = append(out, i*inc)
		}
		return out
	}
	for i := math.Ceil(lo * -inc); i <= math.Floor(hi*-inc); i++ {
		out = append(out, i / -inc)
	}
	return out
}

// Map converts a feature value to a pixel position.
func (a Axis) Map(v float64) float64 {
	return a.From + a.lin.Map(v)*(a.To-a.From)
}

// Ticks returns the major tick values across the nice domain.
func (a Axis) Ticks() []float64 {
	out := make([]float64, len(a.ticks))
	copy(out, a.ticks)
	return out
}

// Mapper maps a track's x and y features to plot coordinates. A Mapper is a
// value; reconfiguring y produces a new Mapper and coordinates computed from
// the old one are stale.
type Mapper struct {
	X    Axis
	Y    Axis
	Plot Plot
}

// NewMapper builds scales for x and y over plot. The y pixel interval is
// inverted so larger values plot higher.
func NewMapper(x, y Feature, plot Plot) (Mapper, error) {
	if plot.Width <= 0 || plot.Height <= 0 {
		plot = DefaultPlot
	}
	xa, err := newAxis(x, 0, plot.Width)
	if err != nil {
		return Mapper{}, err
	}
	ya, err := newAxis(y, plot.Height, 0)
	if err != nil {
		return Mapper{}, err
	}
	return Mapper{X: xa, Y: ya, Plot: plot}, nil
}

// WithY returns a mapper whose y scale is rebuilt for feature y. The x scale
// is carried over unchanged.
func (m Mapper) WithY(y Feature) (Mapper, error) {
	ya, err := newAxis(y, m.Plot.Height, 0)
	if err != nil {
		return Mapper{}, err
	}
	m.Y = ya
	return m, nil
}

// XOf returns the screen x of t.
func (m Mapper) XOf(t Track) float64 {
	v, _ := t.Value(m.X.Feature)
	return m.X.Map(v)
}

// YOf returns the screen y of t.
func (m Mapper) YOf(t Track) float64 {
	v, _ := t.Value(m.Y.Feature)
	return m.Y.Map(v)
}

// Point returns both screen coordinates of t.
func (m Mapper) Point(t Track) (x, y float64) {
	return m.XOf(t), m.YOf(t)
}
