package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/httpsessions/pkg/domain/interfaces"
	"github.com/m-mizutani/httpsessions/pkg/domain/model"
	"github.com/m-mizutani/httpsessions/pkg/domain/types"
)

// DefaultSignExpiry keeps signed URLs valid far beyond any realistic run
const DefaultSignExpiry = 365 * 24 * time.Hour

type measureUseCase struct {
	store           interfaces.ObjectStore
	downloader      interfaces.Downloader
	reporter        *Reporter
	signExpiry      time.Duration
	continueOnError bool
	now             func() time.Time
}

// MeasureOption configures the measurement use case
type MeasureOption func(*measureUseCase)

// WithSignExpiry sets how long each signed URL stays valid
func WithSignExpiry(d time.Duration) MeasureOption {
	return func(uc *measureUseCase) {
		uc.signExpiry = d
	}
}

// WithContinueOnError records a failed object and moves on instead of
// aborting the whole run
func WithContinueOnError(enabled bool) MeasureOption {
	return func(uc *measureUseCase) {
		uc.continueOnError = enabled
	}
}

// WithClock replaces time.Now for expiry computation and the pre-download
// expiry check
func WithClock(now func() time.Time) MeasureOption {
	return func(uc *measureUseCase) {
		uc.now = now
	}
}

// NewMeasure creates a new instance of MeasureUseCase
func NewMeasure(store interfaces.ObjectStore, downloader interfaces.Downloader, reporter *Reporter, opts ...MeasureOption) interfaces.MeasureUseCase {
	uc := &measureUseCase{
		store:      store,
		downloader: downloader,
		reporter:   reporter,
		signExpiry: DefaultSignExpiry,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run measures cold and warm downloads of every object, smallest first
func (uc *measureUseCase) Run(ctx context.Context, container string) (*model.Report, error) {
	logger := ctxlog.From(ctx)

	objects, err := ListSorted(ctx, uc.store, container)
	if err != nil {
		return nil, err
	}

	logger.Info("Listed objects", "container", container, "count", len(objects))

	report := &model.Report{}
	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return report, goerr.Wrap(err, "measurement interrupted",
				goerr.V("container", container),
				goerr.T(types.ErrTagCancelled),
			)
		}

		m, err := uc.measure(ctx, container, obj)
		if err != nil {
			if ctx.Err() != nil {
				return report, goerr.Wrap(err, "measurement interrupted",
					goerr.V("container", container),
					goerr.V("object", obj.Name),
					goerr.T(types.ErrTagCancelled),
				)
			}
			if !uc.continueOnError {
				return report, err
			}
			logger.Warn("Failed to measure object, continuing",
				"object", obj.Name,
				"error", err,
			)
			report.Failures = append(report.Failures, &model.Failure{Object: obj, Err: err})
			continue
		}
		report.Measurements = append(report.Measurements, m)
	}

	uc.reporter.Failures(report.Failures)
	if len(report.Failures) > 0 {
		return report, goerr.New("some objects could not be measured",
			goerr.V("failed", len(report.Failures)),
			goerr.V("measured", len(report.Measurements)),
			goerr.T(types.ErrTagPartialFailure),
		)
	}

	return report, nil
}

// measure signs one object and downloads it twice, strictly one after the other
func (uc *measureUseCase) measure(ctx context.Context, container string, obj *model.Object) (*model.Measurement, error) {
	logger := ctxlog.From(ctx)

	url, err := uc.store.SignReadURL(ctx, container, obj.Name, uc.now().Add(uc.signExpiry))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to sign read URL",
			goerr.V("container", container),
			goerr.V("object", obj.Name),
			goerr.T(types.ErrTagSign),
		)
	}
	logger.Debug("Signed read URL", "object", obj.Name, "expires_at", url.ExpiresAt)

	cold, err := uc.download(ctx, obj, url, "cold")
	if err != nil {
		return nil, err
	}

	warm, err := uc.download(ctx, obj, url, "warm")
	if err != nil {
		return nil, err
	}

	m := &model.Measurement{Object: obj, Cold: cold, Warm: warm}
	uc.reporter.Overhead(m.Overhead())

	logger.Info("Measured object",
		"object", obj.Name,
		"cold", cold.Elapsed,
		"warm", warm.Elapsed,
		"overhead", m.Overhead(),
	)

	return m, nil
}

// download refuses a URL that has already expired so a stale signature is
// reported as a signing problem rather than as a 403 from the transfer
func (uc *measureUseCase) download(ctx context.Context, obj *model.Object, url *model.SignedURL, phase string) (*model.DownloadResult, error) {
	if now := uc.now(); url.Expired(now) {
		return nil, goerr.New("signed URL expired before "+phase+" download",
			goerr.V("object", obj.Name),
			goerr.V("expires_at", url.ExpiresAt),
			goerr.V("now", now),
			goerr.T(types.ErrTagSign),
		)
	}

	result, err := uc.downloader.Download(ctx, obj, url)
	if err != nil {
		return nil, goerr.Wrap(err, phase+" download failed", goerr.V("object", obj.Name))
	}
	return result, nil
}

// ListSorted lists a container and orders the result ascending by size
func ListSorted(ctx context.Context, store interfaces.ObjectStore, container string) ([]*model.Object, error) {
	objects, err := store.ListObjects(ctx, container)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list objects",
			goerr.V("container", container),
			goerr.T(types.ErrTagList),
		)
	}
	model.SortBySize(objects)
	return objects, nil
}
