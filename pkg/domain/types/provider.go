package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Provider identifies the object storage backend
type Provider string

const (
	ProviderAzure Provider = "azure"
	ProviderGCS   Provider = "gcs"
	ProviderS3    Provider = "s3"
)

// Providers lists every supported backend
var Providers = []Provider{ProviderAzure, ProviderGCS, ProviderS3}

// ParseProvider converts a case-insensitive name into a Provider
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Providers {
		if p == known {
			return p, nil
		}
	}
	return "", goerr.New("unsupported storage provider",
		goerr.V("provider", s),
		goerr.T(ErrTagConfig),
	)
}

func (p Provider) String() string {
	return string(p)
}
