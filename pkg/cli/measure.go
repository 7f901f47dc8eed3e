package cli

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/httpsessions/pkg/cli/config"
	"github.com/m-mizutani/httpsessions/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdMeasure(fileCfg *config.File, stdout io.Writer) *cli.Command {
	var (
		storageCfg config.Storage
		measureCfg config.Measure
	)

	flags := append(storageCfg.Flags(), measureCfg.Flags()...)

	return &cli.Command{
		Name:    "measure",
		Aliases: []string{"m"},
		Usage:   "Download every blob twice and report the cold overhead",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			content, err := fileCfg.Load()
			if err != nil {
				return err
			}
			content.ApplyStorage(c.IsSet, &storageCfg)
			if err := content.ApplyMeasure(c.IsSet, &measureCfg); err != nil {
				return err
			}
			if err := measureCfg.Validate(); err != nil {
				return err
			}

			logger.Info("Starting measurement",
				slog.Any("storage", storageCfg),
				slog.Any("measure", measureCfg),
			)

			store, err := storageCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Warn("Failed to close object store", "error", err)
				}
			}()

			if measureCfg.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, measureCfg.Timeout)
				defer cancel()
			}

			// One transport for the whole run; warm downloads reuse its connections
			httpClient := &http.Client{
				Transport: http.DefaultTransport.(*http.Transport).Clone(),
			}
			defer httpClient.CloseIdleConnections()

			reporter := usecase.NewReporter(stdout, measureCfg.ColorEnabled() && config.IsTerminal(stdout))
			downloader := usecase.NewDownloader(httpClient, reporter,
				usecase.WithVerifySize(measureCfg.VerifySize),
				usecase.WithRequestTimeout(measureCfg.RequestTimeout),
			)
			measureUC := usecase.NewMeasure(store, downloader, reporter,
				usecase.WithSignExpiry(measureCfg.SignExpiry),
				usecase.WithContinueOnError(measureCfg.ContinueOnError),
			)

			report, err := measureUC.Run(ctx, storageCfg.Container)
			if err != nil {
				return goerr.Wrap(err, "measurement failed", goerr.V("container", storageCfg.Container))
			}

			logger.Info("Measurement complete",
				"container", storageCfg.Container,
				"measured", len(report.Measurements),
			)
			return nil
		},
	}
}
