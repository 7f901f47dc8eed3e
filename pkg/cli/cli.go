package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/httpsessions/pkg/cli/config"
	"github.com/m-mizutani/httpsessions/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application, writing the report to stdout
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout)
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
		fileCfg   config.File
		logger    *slog.Logger
	)

	flags := append(loggerCfg.Flags(), sentryCfg.Flags()...)
	flags = append(flags, fileCfg.Flags()...)

	app := &cli.Command{
		Name:           "httpsessions",
		Usage:          "Measure cold and warm download overhead of cloud storage blobs",
		Version:        types.Version,
		Flags:          flags,
		DefaultCommand: "measure",
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}
			logger = logger.With("run_id", uuid.NewString())

			if err := sentryCfg.Configure(); err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdMeasure(&fileCfg, stdout),
			cmdList(&fileCfg, stdout),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		sentryCfg.Capture(err)
		return err
	}

	return nil
}
