// Package s3 implements ObjectStore on Amazon S3 and S3-compatible services.
package s3

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/httpsessions/pkg/domain/interfaces"
	"github.com/m-mizutani/httpsessions/pkg/domain/model"
	"github.com/m-mizutani/httpsessions/pkg/infra/storage/connstr"
)

// MaxSignExpiry is the longest lifetime S3 accepts for a presigned URL
const MaxSignExpiry = 7 * 24 * time.Hour

// Config holds the values accepted in an S3 connection string
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Region          string
	Endpoint        string // set for S3-compatible services; enables path-style addressing
}

// ParseConnectionString reads
// "AccessKeyId=...;SecretAccessKey=...;SessionToken=...;Region=...;Endpoint=...".
// Without keys the default AWS credential chain is used.
func ParseConnectionString(s string) (*Config, error) {
	values, err := connstr.Parse(s)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse S3 connection string")
	}

	cfg := &Config{
		AccessKeyID:     values.Get("AccessKeyId"),
		SecretAccessKey: values.Get("SecretAccessKey"),
		SessionToken:    values.Get("SessionToken"),
		Region:          values.Get("Region"),
		Endpoint:        values.Get("Endpoint"),
	}
	if (cfg.AccessKeyID == "") != (cfg.SecretAccessKey == "") {
		return nil, goerr.New("AccessKeyId and SecretAccessKey must be set together")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	return cfg, nil
}

type client struct {
	s3      *s3.Client
	presign *s3.PresignClient
	now     func() time.Time
}

// NewClient creates an S3 client
func NewClient(ctx context.Context, cfg *Config) (interfaces.ObjectStore, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load AWS configuration")
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &client{
		s3:      s3Client,
		presign: s3.NewPresignClient(s3Client),
		now:     time.Now,
	}, nil
}

// ListObjects pages through every object in the bucket
func (c *client) ListObjects(ctx context.Context, container string) ([]*model.Object, error) {
	var objects []*model.Object

	paginator := s3.NewListObjectsV2Paginator(c.s3, &s3.ListObjectsV2Input{
		Bucket: aws.String(container),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list objects", goerr.V("bucket", container))
		}

		for _, o := range page.Contents {
			obj := &model.Object{Name: aws.ToString(o.Key)}
			if o.Size != nil {
				size := *o.Size
				obj.Size = &size
			}
			objects = append(objects, obj)
		}
	}

	return objects, nil
}

// SignReadURL presigns a GetObject request. Expiry is clamped to the S3 limit.
func (c *client) SignReadURL(ctx context.Context, container, name string, expiry time.Time) (*model.SignedURL, error) {
	now := c.now()
	if limit := now.Add(MaxSignExpiry); expiry.After(limit) {
		expiry = limit
	}

	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(name),
	}, s3.WithPresignExpires(expiry.Sub(now).Round(time.Second)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to presign object",
			goerr.V("bucket", container),
			goerr.V("key", name),
		)
	}

	return &model.SignedURL{URL: req.URL, ExpiresAt: expiry}, nil
}

// Close is a no-op; the AWS SDK holds no closable resources
func (c *client) Close() error {
	return nil
}
