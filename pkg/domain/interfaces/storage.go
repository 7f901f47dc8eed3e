package interfaces

import (
	"context"
	"time"

	"github.com/m-mizutani/httpsessions/pkg/domain/model"
)

// ObjectStore defines the cloud storage operations a measurement needs
type ObjectStore interface {
	// ListObjects returns every object in the container, in backend order
	ListObjects(ctx context.Context, container string) ([]*model.Object, error)

	// SignReadURL creates a bearer URL granting read access to one object until expiry
	SignReadURL(ctx context.Context, container, name string, expiry time.Time) (*model.SignedURL, error)

	// Close releases the underlying client
	Close() error
}
