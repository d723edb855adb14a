package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/trackscope/internal/adapters/render"
	"github.com/ewilliams-labs/trackscope/internal/app"
	"github.com/ewilliams-labs/trackscope/internal/core/services"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var flags viewFlags
	var out, format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the chart of a filtered view as HTML or PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(out), ".")
			}
			if format != "html" && format != "png" {
				return fmt.Errorf("unsupported format %q (html or png)", format)
			}

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

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			palette := render.NewPalette(dataset.Genres())
			if format == "html" {
				err = render.ScatterHTML(f, v, palette)
			} else {
				err = render.ScatterPNG(f, v, palette, render.DefaultSize)
			}
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d tracks)\n", out, v.FilteredCount)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "trackscope.html", "Output file")
	cmd.Flags().StringVar(&format, "format", "", "html or png (default from the output extension)")
	return cmd
}
