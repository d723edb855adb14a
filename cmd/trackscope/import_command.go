package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/trackscope/internal/app"
	"github.com/ewilliams-labs/trackscope/internal/config"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Reload the dataset source and refresh the catalog cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != config.DriverSQLite {
				return errors.New("import requires storage.driver = \"sqlite\"")
			}

			lock := flock.New(cfg.Storage.Path + ".lock")
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire catalog lock: %w", err)
			}
			if !ok {
				return fmt.Errorf("another import holds %s", lock.Path())
			}
			defer func() { _ = lock.Unlock() }()

			loader, closeFn, err := app.Loader(cfg, ctx.logger)
			if err != nil {
				return err
			}
			defer closeFn()

			dataset, err := loader.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s tracks in %s genres into %s\n",
				humanize.Comma(int64(dataset.Len())), humanize.Comma(int64(len(dataset.Genres()))), cfg.Storage.Path)
			return nil
		},
	}
}
