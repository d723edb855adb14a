package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
)

// Size is the size of a raster image.
type Size struct {
	Width, Height vg.Length
}

// DefaultSize matches the default plot area plus room for the legend.
var DefaultSize = Size{Width: 12 * vg.Inch, Height: 5 * vg.Inch}

// ScatterPNG renders v as a PNG. v must carry points.
func ScatterPNG(w io.Writer, v domain.View, p Palette, size Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}
	pl := plot.New()
	pl.Title.Text = Title(v)
	pl.X.Label.Text = v.X.Label
	pl.Y.Label.Text = v.Y.Label
	pl.X.Min, pl.X.Max = v.X.Domain.Min, v.X.Domain.Max
	pl.Y.Min, pl.Y.Max = v.Y.Domain.Min, v.Y.Domain.Max
	pl.Add(plotter.NewGrid())
	pl.Legend.Top = true

	for _, s := range groupPoints(v) {
		sc, err := plotter.NewScatter(s.xys)
		if err != nil {
			return fmt.Errorf("render: scatter %s: %w", s.genre, err)
		}
		c := p.RGBA(s.genre)
		sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			style := draw.GlyphStyle{Color: c, Shape: draw.CircleGlyph{}, Radius: vg.Points(2.5)}
			if !v.SelectionActive {
				return style
			}
			if s.selected[i] {
				style.Radius = vg.Points(3.5)
				return style
			}
			style.Color = fade(c)
			style.Radius = vg.Points(1.5)
			return style
		}
		pl.Add(sc)
		pl.Legend.Add(s.genre, sc)
	}

	wt, err := pl.WriterTo(size.Width, size.Height, "png")
	if err != nil {
		return fmt.Errorf("render: png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render: png: %w", err)
	}
	return nil
}

type pointGroup struct {
	genre    string
	xys      plotter.XYs
	selected []bool
}

func groupPoints(v domain.View) []pointGroup {
	var out []pointGroup
	pos := make(map[string]int)
	for _, pt := range v.Points {
		i, ok := pos[pt.Genre]
		if !ok {
			i = len(out)
			pos[pt.Genre] = i
			out = append(out, pointGroup{genre: pt.Genre})
		}
		x, y := values(v, pt)
		out[i].xys = append(out[i].xys, plotter.XY{X: x, Y: y})
		out[i].selected = append(out[i].selected, pt.Selected)
	}
	return out
}

// fade blends c toward white.
func fade(c color.RGBA) color.RGBA {
	mix := func(v uint8) uint8 { return uint8((int(v) + 3*0xff) / 4) }
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: 0xff}
}
