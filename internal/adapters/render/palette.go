// Package render draws explorer views as ECharts HTML pages or static PNGs.
package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/palette"
)

// baseColors are the first genre colours, assigned in sorted genre order.
var baseColors = []string{
	"#e6194B", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#42d4f4", "#f032e6", "#bfef45", "#fabed4",
	"#469990", "#dcbeff", "#9A6324", "#fffac8", "#800000",
	"#aaffc3", "#808000", "#ffd8b1", "#000075", "#a9a9a9",
	"#ff6347", "#4682b4", "#32cd32", "#ff1493", "#00ced1",
	"#ff8c00", "#9932cc", "#00fa9a", "#dc143c", "#00bfff",
	"#ffa500", "#8a2be2", "#adff2f", "#ff69b4", "#1e90ff",
}

// UnknownColor is used for genres outside the palette's genre list.
const UnknownColor = "#9e9e9e"

// Palette maps genres to colours by their ordinal in a sorted genre list.
// Genres past the base colours get evenly spaced hues, so every genre keeps
// a distinct colour however many there are.
type Palette struct {
	index  map[string]int
	colors []string
}

// NewPalette builds a palette for sorted genres.
func NewPalette(genres []string) Palette {
	p := Palette{index: make(map[string]int, len(genres)), colors: make([]string, len(genres))}
	extra := len(genres) - len(baseColors)
	var generated []color.Color
	if extra > 0 {
		// Hue 1 wraps to hue 0, so one extra colour is generated and dropped.
		generated = palette.Rainbow(extra+1, palette.Hue(0), palette.Hue(1), 0.65, 0.85, 1).Colors()[:extra]
	}
	for i, g := range genres {
		p.index[g] = i
		if i < len(baseColors) {
			p.colors[i] = baseColors[i]
			continue
		}
		p.colors[i] = hex(generated[i-len(baseColors)])
	}
	return p
}

// Color returns the colour of genre as "#rrggbb".
func (p Palette) Color(genre string) string {
	if i, ok := p.index[genre]; ok {
		return p.colors[i]
	}
	return UnknownColor
}

// RGBA returns the colour of genre for raster output.
func (p Palette) RGBA(genre string) color.RGBA {
	c, err := parseHex(p.Color(genre))
	if err != nil {
		return color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	}
	return c
}

// Len returns the number of genres with an assigned colour.
func (p Palette) Len() int { return len(p.colors) }

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

func parseHex(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return color.RGBA{}, fmt.Errorf("render: bad colour %q: %w", s, err)
	}
	return c, nil
}
