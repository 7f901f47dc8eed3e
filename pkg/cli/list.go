package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/httpsessions/pkg/cli/config"
	"github.com/m-mizutani/httpsessions/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdList(fileCfg *config.File, stdout io.Writer) *cli.Command {
	var storageCfg config.Storage

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List blobs in the order they would be measured",
		Flags:   storageCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			content, err := fileCfg.Load()
			if err != nil {
				return err
			}
			content.ApplyStorage(c.IsSet, &storageCfg)

			store, err := storageCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Warn("Failed to close object store", "error", err)
				}
			}()

			objects, err := usecase.ListSorted(ctx, store, storageCfg.Container)
			if err != nil {
				return err
			}

			reporter := usecase.NewReporter(stdout, false)
			for _, obj := range objects {
				reporter.Listing(obj)
			}
			logger.Debug("Listed objects", "container", storageCfg.Container, "count", len(objects))
			return nil
		},
	}
}
