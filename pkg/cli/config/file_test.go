package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/httpsessions/pkg/cli/config"
)

const sampleConfig = `
[storage]
provider = "gcs"
container = "benchmark-blobs"

[measure]
sign_expiry = "2h"
request_timeout = "30s"
verify_size = true
continue_on_error = true
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "httpsessions.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func noneSet(string) bool { return false }

func TestFile_Load(t *testing.T) {
	t.Run("no path", func(t *testing.T) {
		content, err := (&config.File{}).Load()
		gt.NoError(t, err)
		gt.Nil(t, content)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := (&config.File{Path: filepath.Join(t.TempDir(), "none.toml")}).Load()
		gt.Error(t, err)
	})

	t.Run("invalid toml", func(t *testing.T) {
		_, err := (&config.File{Path: writeConfig(t, "[storage\nprovider=")}).Load()
		gt.Error(t, err)
	})
}

func TestFileContent_Apply(t *testing.T) {
	content, err := (&config.File{Path: writeConfig(t, sampleConfig)}).Load()
	gt.NoError(t, err)

	t.Run("fills unset values", func(t *testing.T) {
		storage := config.Storage{Provider: "azure", Container: "samples"}
		measure := config.Measure{SignExpiry: time.Hour}

		content.ApplyStorage(noneSet, &storage)
		gt.NoError(t, content.ApplyMeasure(noneSet, &measure))

		gt.Equal(t, storage.Provider, "gcs")
		gt.Equal(t, storage.Container, "benchmark-blobs")
		gt.Equal(t, measure.SignExpiry, 2*time.Hour)
		gt.Equal(t, measure.RequestTimeout, 30*time.Second)
		gt.Equal(t, measure.Timeout, time.Duration(0))
		gt.True(t, measure.VerifySize)
		gt.True(t, measure.ContinueOnError)
	})

	t.Run("explicit flags win", func(t *testing.T) {
		explicit := map[string]bool{"container": true, "sign-expiry": true, "verify-size": true}
		isSet := func(name string) bool { return explicit[name] }

		storage := config.Storage{Provider: "azure", Container: "from-flag"}
		measure := config.Measure{SignExpiry: time.Hour}

		content.ApplyStorage(isSet, &storage)
		gt.NoError(t, content.ApplyMeasure(isSet, &measure))

		gt.Equal(t, storage.Provider, "gcs")
		gt.Equal(t, storage.Container, "from-flag")
		gt.Equal(t, measure.SignExpiry, time.Hour)
		gt.False(t, measure.VerifySize)
	})

	t.Run("invalid duration", func(t *testing.T) {
		bad, err := (&config.File{Path: writeConfig(t, "[measure]\ntimeout = \"soon\"\n")}).Load()
		gt.NoError(t, err)
		gt.Error(t, bad.ApplyMeasure(noneSet, &config.Measure{}))
	})

	t.Run("nil content is a no-op", func(t *testing.T) {
		var none *config.FileContent
		storage := config.Storage{Provider: "azure"}
		none.ApplyStorage(noneSet, &storage)
		gt.NoError(t, none.ApplyMeasure(noneSet, &config.Measure{}))
		gt.Equal(t, storage.Provider, "azure")
	})
}
