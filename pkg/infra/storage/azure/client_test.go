package azure_test

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/httpsessions/pkg/infra/storage/azure"
)

// Well-known Azurite development account
const azuriteConnectionString = "DefaultEndpointsProtocol=http;" +
	"AccountName=devstoreaccount1;" +
	"AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;" +
	"BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func TestClient_SignReadURL(t *testing.T) {
	client, err := azure.NewClient(azuriteConnectionString)
	gt.NoError(t, err)
	defer client.Close()

	expiry := time.Now().Add(365 * 24 * time.Hour).UTC().Truncate(time.Second)
	signed, err := client.SignReadURL(context.Background(), "samples", "dir/blob.bin", expiry)
	gt.NoError(t, err)
	gt.Equal(t, signed.ExpiresAt, expiry)

	u, err := url.Parse(signed.URL)
	gt.NoError(t, err)
	gt.Equal(t, u.Host, "127.0.0.1:10000")
	gt.Equal(t, u.Path, "/devstoreaccount1/samples/dir/blob.bin")

	q := u.Query()
	gt.Equal(t, q.Get("sp"), "r")
	gt.Equal(t, q.Get("se"), expiry.Format(time.RFC3339))
	gt.V(t, q.Get("sig")).NotEqual("")
}

func TestClient_InvalidConnectionString(t *testing.T) {
	_, err := azure.NewClient("not a connection string")
	gt.Error(t, err)
}

func TestClient_ListObjects(t *testing.T) {
	connStr := os.Getenv("TEST_AZURE_CONNECTION_STRING")
	container := os.Getenv("TEST_AZURE_CONTAINER")
	if connStr == "" || container == "" {
		t.Skip("TEST_AZURE_CONNECTION_STRING and TEST_AZURE_CONTAINER are not set")
	}

	client, err := azure.NewClient(connStr)
	gt.NoError(t, err)
	defer client.Close()

	objects, err := client.ListObjects(context.Background(), container)
	gt.NoError(t, err)
	for _, obj := range objects {
		gt.V(t, obj.Name).NotEqual("")
	}
}
