package usecase

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/httpsessions/pkg/domain/interfaces"
	"github.com/m-mizutani/httpsessions/pkg/domain/model"
	"github.com/m-mizutani/httpsessions/pkg/domain/types"
	"github.com/m-mizutani/httpsessions/pkg/utils/counter"
)

type downloader struct {
	client         *http.Client
	reporter       *Reporter
	verifySize     bool
	requestTimeout time.Duration
}

// DownloaderOption configures a Downloader
type DownloaderOption func(*downloader)

// WithVerifySize makes a download fail when the received byte count differs
// from the declared object size
func WithVerifySize(verify bool) DownloaderOption {
	return func(d *downloader) {
		d.verifySize = verify
	}
}

// WithRequestTimeout bounds each download. Zero means no limit.
func WithRequestTimeout(timeout time.Duration) DownloaderOption {
	return func(d *downloader) {
		d.requestTimeout = timeout
	}
}

// NewDownloader creates a Downloader. The HTTP client is shared by every
// download so that connection reuse shows up in warm measurements.
func NewDownloader(client *http.Client, reporter *Reporter, opts ...DownloaderOption) interfaces.Downloader {
	d := &downloader{
		client:   client,
		reporter: reporter,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download performs one full-body GET against the signed URL
func (d *downloader) Download(ctx context.Context, obj *model.Object, url *model.SignedURL) (*model.DownloadResult, error) {
	logger := ctxlog.From(ctx)

	if d.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.requestTimeout)
		defer cancel()
	}

	d.reporter.Downloading(obj)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.URL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create download request",
			goerr.V("object", obj.Name),
			goerr.T(types.ErrTagTransfer),
		)
	}

	sink := counter.New()
	start := time.Now()

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download object",
			goerr.V("object", obj.Name),
			goerr.T(types.ErrTagTransfer),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.New("unexpected status code",
			goerr.V("object", obj.Name),
			goerr.V("status", resp.StatusCode),
			goerr.T(types.ErrTagTransfer),
		)
	}

	if _, err := io.Copy(sink, resp.Body); err != nil {
		return nil, goerr.Wrap(err, "failed to read response body",
			goerr.V("object", obj.Name),
			goerr.V("received", sink.Len()),
			goerr.T(types.ErrTagTransfer),
		)
	}
	elapsed := time.Since(start)

	if d.verifySize && obj.Size != nil && *obj.Size != sink.Len() {
		return nil, goerr.New("received size does not match declared size",
			goerr.V("object", obj.Name),
			goerr.V("declared", *obj.Size),
			goerr.V("received", sink.Len()),
			goerr.T(types.ErrTagSizeMismatch),
		)
	}

	result := &model.DownloadResult{
		Elapsed: elapsed,
		Bytes:   sink.Len(),
	}

	logger.Debug("Downloaded object",
		"object", obj.Name,
		"bytes", result.Bytes,
		"size", humanize.Bytes(uint64(result.Bytes)),
		"elapsed", result.Elapsed,
		"proto", resp.Proto,
	)
	d.reporter.Downloaded(result)

	return result, nil
}
