package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
)

// Symbol sizes in pixels. Points outside an active selection shrink so the
// selection stands out.
const (
	symbolNormal   = 7
	symbolSelected = 10
	symbolDimmed   = 4
)

// AssetsHost serves the ECharts JavaScript. Empty uses the go-echarts default.
var AssetsHost = ""

// ScatterHTML renders v as a standalone ECharts page with one series per
// genre. v must carry points.
func ScatterHTML(w io.Writer, v domain.View, p Palette) error {
	scatter := charts.NewScatter()
	initOpts := opts.Initialization{
		PageTitle: "trackscope",
		Width:     fmt.Sprintf("%.0fpx", v.Plot.Width+180),
		Height:    fmt.Sprintf("%.0fpx", v.Plot.Height+100),
	}
	if AssetsHost != "" {
		initOpts.AssetsHost = AssetsHost
	}
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: Title(v), Subtitle: subtitle(v)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll", Orient: "vertical", Right: "0"}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: v.X.Label, NameLocation: "middle", NameGap: 25,
			Min: v.X.Domain.Min, Max: v.X.Domain.Max,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: v.Y.Label, NameLocation: "middle", NameGap: 40,
			Min: v.Y.Domain.Min, Max: v.Y.Domain.Max,
		}),
	)

	for _, s := range groupSeries(v) {
		scatter.AddSeries(s.genre, s.data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: p.Color(s.genre)}))
	}
	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render: echarts: %w", err)
	}
	return nil
}

type series struct {
	genre string
	data  []opts.ScatterData
}

// groupSeries splits the points by genre in first-occurrence order.
func groupSeries(v domain.View) []series {
	var out []series
	pos := make(map[string]int)
	for _, pt := range v.Points {
		i, ok := pos[pt.Genre]
		if !ok {
			i = len(out)
			pos[pt.Genre] = i
			out = append(out, series{genre: pt.Genre})
		}
		x, y := values(v, pt)
		out[i].data = append(out[i].data, opts.ScatterData{
			Name:       Tooltip(pointTrack(pt)),
			Value:      []interface{}{x, y},
			SymbolSize: symbolSize(v.SelectionActive, pt.Selected),
		})
	}
	return out
}

func symbolSize(active, selected bool) int {
	switch {
	case !active:
		return symbolNormal
	case selected:
		return symbolSelected
	default:
		return symbolDimmed
	}
}

func subtitle(v domain.View) string {
	if v.SelectionActive {
		return fmt.Sprintf("%d of %d tracks selected", v.SelectedCount, v.FilteredCount)
	}
	return fmt.Sprintf("%d tracks", v.FilteredCount)
}
