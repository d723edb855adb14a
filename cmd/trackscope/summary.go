package main

import (
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/trackscope/internal/app"
	"github.com/ewilliams-labs/trackscope/internal/core/domain"
	"github.com/ewilliams-labs/trackscope/internal/core/services"
)

type summaryOutput struct {
	Filter        domain.FilterSpec `json:"filter"`
	YAxis         domain.Feature    `json:"y_axis"`
	Selection     *domain.Rect      `json:"selection"`
	FilteredCount int               `json:"filtered_count"`
	Stats         domain.Stats      `json:"stats"`
}

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	var flags viewFlags
	var asJSON, byGenre bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print statistics for a filtered view of the dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := ctx.loadDataset(cmd)
			if err != nil {
				return err
			}
			e, err := services.NewExplorer("cli", dataset, app.Plot(ctx.config), ctx.logger)
			if err != nil {
				return err
			}
			v, err := flags.apply(e)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, summaryOutput{
					Filter:        v.Spec,
					YAxis:         v.Y.Feature,
					Selection:     v.Brush,
					FilteredCount: v.FilteredCount,
					Stats:         v.Stats,
				})
			}
			if err := writeRows(cmd.OutOrStdout(), []string{"Statistic", "Value"}, statsRows(v.Stats), []columnAlignment{alignLeft, alignRight}); err != nil {
				return err
			}
			if !byGenre {
				return nil
			}
			return writeRows(cmd.OutOrStdout(), []string{"Genre", "Tracks"}, genreRows(v.Stats), []columnAlignment{alignLeft, alignRight})
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	cmd.Flags().BoolVar(&byGenre, "by-genre", false, "Also list track counts per genre")
	return cmd
}

func statsRows(s domain.Stats) [][]string {
	return [][]string{
		{"Tracks", s.CountLabel()},
		{"Avg Danceability", s.MeanDanceability.Format()},
		{"Avg Energy", s.MeanEnergy.Format()},
		{"Avg Valence", s.MeanValence.Format()},
		{"Top Genre", s.TopGenre.String()},
	}
}

// genreRows lists genre counts largest first; ties keep first-occurrence order.
func genreRows(s domain.Stats) [][]string {
	counts := append([]domain.GenreCount(nil), s.GenreCounts...)
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Genre, humanize.Comma(int64(c.Count))})
	}
	return rows
}
