package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/trackscope/internal/adapters/render"
	"github.com/ewilliams-labs/trackscope/internal/core/domain"
)

type genreOutput struct {
	Genre  string `json:"genre"`
	Color  string `json:"color"`
	Tracks int    `json:"tracks"`
}

func newGenresCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "genres",
		Short: "List genres in the sampled dataset with their colours",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := ctx.loadDataset(cmd)
			if err != nil {
				return err
			}
			palette := render.NewPalette(dataset.Genres())
			counts := make(map[string]int)
			for _, c := range domain.Summarize(dataset.Tracks()).GenreCounts {
				counts[c.Genre] = c.Count
			}

			out := make([]genreOutput, 0, len(dataset.Genres()))
			rows := make([][]string, 0, len(dataset.Genres()))
			for _, g := range dataset.Genres() {
				out = append(out, genreOutput{Genre: g, Color: palette.Color(g), Tracks: counts[g]})
				rows = append(rows, []string{g, palette.Color(g), humanize.Comma(int64(counts[g]))})
			}
			if asJSON {
				return writeJSON(cmd, out)
			}
			return writeRows(cmd.OutOrStdout(), []string{"Genre", "Color", "Tracks"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newFeaturesCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "features",
		Short:       "List the feature registry",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			features := domain.Features()
			if asJSON {
				return writeJSON(cmd, features)
			}
			rows := make([][]string, 0, len(features))
			for _, f := range features {
				rows = append(rows, []string{
					string(f.Name),
					f.Label,
					fmt.Sprintf("%g", f.Min),
					fmt.Sprintf("%g", f.Max),
					yesNo(domain.IsYAxisChoice(f.Name)),
				})
			}
			return writeRows(cmd.OutOrStdout(),
				[]string{"Feature", "Label", "Min", "Max", "Y Axis"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
