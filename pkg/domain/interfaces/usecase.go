package interfaces

import (
	"context"

	"github.com/m-mizutani/httpsessions/pkg/domain/model"
)

// Downloader fetches a full object body through a signed URL
type Downloader interface {
	// Download performs one GET and measures elapsed time and received bytes
	Download(ctx context.Context, obj *model.Object, url *model.SignedURL) (*model.DownloadResult, error)
}

// MeasureUseCase defines the cold/warm measurement over a container
type MeasureUseCase interface {
	// Run measures every object of the container in ascending size order
	Run(ctx context.Context, container string) (*model.Report, error)
}
