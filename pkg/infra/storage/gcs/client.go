// Package gcs implements ObjectStore on Google Cloud Storage.
package gcs

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/httpsessions/pkg/domain/interfaces"
	"github.com/m-mizutani/httpsessions/pkg/domain/model"
	"github.com/m-mizutani/httpsessions/pkg/infra/storage/connstr"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// MaxSignExpiry is the longest lifetime of a V4 signed URL
const MaxSignExpiry = 7 * 24 * time.Hour

type client struct {
	gcs *storage.Client
	now func() time.Time
}

// Config holds the values accepted in a GCS connection string
type Config struct {
	CredentialsFile string
	Endpoint        string
}

// ParseConnectionString reads "CredentialsFile=...;Endpoint=..." entries.
// Both keys are optional; without credentials Application Default
// Credentials are used.
func ParseConnectionString(s string) (*Config, error) {
	values, err := connstr.Parse(s)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse GCS connection string")
	}
	return &Config{
		CredentialsFile: values.Get("CredentialsFile"),
		Endpoint:        values.Get("Endpoint"),
	}, nil
}

// NewClient creates a Cloud Storage client
func NewClient(ctx context.Context, cfg *Config) (interfaces.ObjectStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	c, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client")
	}

	return &client{gcs: c, now: time.Now}, nil
}

// ListObjects iterates over every object in the bucket
func (c *client) ListObjects(ctx context.Context, container string) ([]*model.Object, error) {
	var objects []*model.Object

	it := c.gcs.Bucket(container).Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list objects", goerr.V("bucket", container))
		}
		objects = append(objects, model.NewObject(attrs.Name, attrs.Size))
	}

	return objects, nil
}

// SignReadURL creates a V4 signed GET URL. Expiry is clamped to the V4 limit.
func (c *client) SignReadURL(ctx context.Context, container, name string, expiry time.Time) (*model.SignedURL, error) {
	expiry = ClampExpiry(c.now(), expiry)

	url, err := c.gcs.Bucket(container).SignedURL(name, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: expiry,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to sign object URL",
			goerr.V("bucket", container),
			goerr.V("object", name),
		)
	}

	return &model.SignedURL{URL: url, ExpiresAt: expiry}, nil
}

// Close closes the underlying client
func (c *client) Close() error {
	if err := c.gcs.Close(); err != nil {
		return goerr.Wrap(err, "failed to close Cloud Storage client")
	}
	return nil
}

// ClampExpiry limits expiry to MaxSignExpiry after now
func ClampExpiry(now, expiry time.Time) time.Time {
	if limit := now.Add(MaxSignExpiry); expiry.After(limit) {
		return limit
	}
	return expiry
}
