package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
	"github.com/ewilliams-labs/trackscope/internal/core/services"
)

// viewFlags replays control-surface events from command-line flags.
type viewFlags struct {
	genres  []string
	all     bool
	dance   string
	energy  string
	valence string
	y       string
	brush   string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringSliceVar(&f.genres, "genre", nil, "Genre to include (repeatable); none shows every genre")
	fl.BoolVar(&f.all, "all-genres", false, "Check every genre")
	fl.StringVar(&f.dance, "dance", "", "Danceability range as min:max on the 0-100 scale")
	fl.StringVar(&f.energy, "energy", "", "Energy range as min:max on the 0-100 scale")
	fl.StringVar(&f.valence, "valence", "", "Valence range as min:max on the 0-100 scale")
	fl.StringVar(&f.y, "y", "", "Y-axis feature")
	fl.StringVar(&f.brush, "brush", "", "Selection rectangle in plot pixels as x0,y0,x1,y1")
}

// apply runs the flags against e in control order: genres, ranges, axis,
// then brush.
func (f *viewFlags) apply(e *services.Explorer) (domain.View, error) {
	v := e.Snapshot(true)
	var err error
	switch {
	case f.all:
		if v, err = e.SelectAllGenres(); err != nil {
			return v, err
		}
	case len(f.genres) > 0:
		if v, err = e.SetGenres(f.genres); err != nil {
			return v, err
		}
	}

	for _, r := range []struct {
		feature domain.Feature
		value   string
	}{
		{domain.Danceability, f.dance},
		{domain.Energy, f.energy},
		{domain.Valence, f.valence},
	} {
		if r.value == "" {
			continue
		}
		lo, hi, err := parsePercentRange(r.value)
		if err != nil {
			return v, fmt.Errorf("--%s: %w", flagName(r.feature), err)
		}
		if v, err = e.SetRange(r.feature, lo, hi); err != nil {
			return v, err
		}
	}

	if f.y != "" {
		if v, err = e.ChangeYAxis(domain.Feature(f.y)); err != nil {
			return v, err
		}
	}

	if f.brush != "" {
		rect, err := parseRect(f.brush)
		if err != nil {
			return v, fmt.Errorf("--brush: %w", err)
		}
		if v, err = e.BrushEnd(&rect); err != nil {
			return v, err
		}
	}
	return v, nil
}

func flagName(f domain.Feature) string {
	if f == domain.Danceability {
		return "dance"
	}
	return string(f)
}

// parsePercentRange parses "min:max" slider positions. Crossed values are
// kept as given.
func parsePercentRange(s string) (int, int, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("expected min:max, got %q", s)
	}
	minPct, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, fmt.Errorf("bad min %q", lo)
	}
	maxPct, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return 0, 0, fmt.Errorf("bad max %q", hi)
	}
	if minPct < 0 || minPct > 100 || maxPct < 0 || maxPct > 100 {
		return 0, 0, fmt.Errorf("values must be between 0 and 100, got %q", s)
	}
	return minPct, maxPct, nil
}

func parseRect(s string) (domain.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return domain.Rect{}, fmt.Errorf("expected x0,y0,x1,y1, got %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return domain.Rect{}, fmt.Errorf("bad coordinate %q", p)
		}
		v[i] = f
	}
	return domain.Rect{X0: v[0], Y0: v[1], X1: v[2], Y1: v[3]}, nil
}
