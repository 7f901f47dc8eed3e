package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/httpsessions/pkg/domain/interfaces"
	"github.com/m-mizutani/httpsessions/pkg/domain/types"
	"github.com/m-mizutani/httpsessions/pkg/infra/storage/azure"
	"github.com/m-mizutani/httpsessions/pkg/infra/storage/gcs"
	"github.com/m-mizutani/httpsessions/pkg/infra/storage/s3"
	"github.com/urfave/cli/v3"
)

// Storage holds object storage configuration
type Storage struct {
	ConnectionString string `masq:"secret"`
	Provider         string
	Container        string
}

// Flags returns CLI flags for storage configuration
func (c *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "connection-string",
			Usage:       "Storage connection string (Azure connection string, or Key=Value;... for gcs and s3)",
			Required:    true,
			Destination: &c.ConnectionString,
			Sources:     cli.EnvVars("STORAGE_CONNECTION_STRING"),
		},
		&cli.StringFlag{
			Name:        "provider",
			Usage:       "Storage provider (azure, gcs, s3)",
			Value:       string(types.ProviderAzure),
			Destination: &c.Provider,
			Sources:     cli.EnvVars("STORAGE_PROVIDER"),
		},
		&cli.StringFlag{
			Name:        "container",
			Aliases:     []string{"bucket"},
			Usage:       "Container or bucket to measure",
			Value:       "samples",
			Destination: &c.Container,
			Sources:     cli.EnvVars("STORAGE_CONTAINER"),
		},
	}
}

// Validate checks the configuration without touching the network
func (c *Storage) Validate() (types.Provider, error) {
	if c.ConnectionString == "" {
		return "", goerr.New("storage connection string is not set (STORAGE_CONNECTION_STRING)",
			goerr.T(types.ErrTagConfig),
		)
	}
	if c.Container == "" {
		return "", goerr.New("storage container is not set", goerr.T(types.ErrTagConfig))
	}
	return types.ParseProvider(c.Provider)
}

// Configure creates the ObjectStore for the configured provider
func (c *Storage) Configure(ctx context.Context) (interfaces.ObjectStore, error) {
	provider, err := c.Validate()
	if err != nil {
		return nil, err
	}

	var store interfaces.ObjectStore
	switch provider {
	case types.ProviderAzure:
		store, err = azure.NewClient(c.ConnectionString)

	case types.ProviderGCS:
		var cfg *gcs.Config
		if cfg, err = gcs.ParseConnectionString(c.ConnectionString); err == nil {
			store, err = gcs.NewClient(ctx, cfg)
		}

	case types.ProviderS3:
		var cfg *s3.Config
		if cfg, err = s3.ParseConnectionString(c.ConnectionString); err == nil {
			store, err = s3.NewClient(ctx, cfg)
		}
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure object store",
			goerr.V("provider", provider),
			goerr.T(types.ErrTagConfig),
		)
	}

	return store, nil
}
