// Package azure implements ObjectStore on Azure Blob Storage.
package azure

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/httpsessions/pkg/domain/interfaces"
	"github.com/m-mizutani/httpsessions/pkg/domain/model"
)

type client struct {
	blob *azblob.Client
}

// NewClient creates an Azure Blob Storage client from an account connection
// string. The string must carry an AccountKey for SAS signing to work.
func NewClient(connectionString string) (interfaces.ObjectStore, error) {
	c, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Azure Blob Storage client")
	}

	return &client{blob: c}, nil
}

// ListObjects lists every blob of the container with its content length
func (c *client) ListObjects(ctx context.Context, container string) ([]*model.Object, error) {
	var objects []*model.Object

	pager := c.blob.NewListBlobsFlatPager(container, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list blobs", goerr.V("container", container))
		}

		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			obj := &model.Object{Name: *item.Name}
			if item.Properties != nil && item.Properties.ContentLength != nil {
				size := *item.Properties.ContentLength
				obj.Size = &size
			}
			objects = append(objects, obj)
		}
	}

	return objects, nil
}

// SignReadURL creates a read-only blob SAS URL valid until expiry
func (c *client) SignReadURL(ctx context.Context, container, name string, expiry time.Time) (*model.SignedURL, error) {
	blobClient := c.blob.ServiceClient().NewContainerClient(container).NewBlobClient(name)

	url, err := blobClient.GetSASURL(sas.BlobPermissions{Read: true}, expiry, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate blob SAS URL",
			goerr.V("container", container),
			goerr.V("blob", name),
		)
	}

	return &model.SignedURL{URL: url, ExpiresAt: expiry}, nil
}

// Close is a no-op; the Azure SDK holds no closable resources
func (c *client) Close() error {
	return nil
}
