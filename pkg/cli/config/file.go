package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/httpsessions/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File holds the path of an optional TOML configuration file. Values in the
// file only apply to flags that were not set on the command line or through
// environment variables. Secrets are not read from the file.
type File struct {
	Path string
}

// FileContent is the TOML document layout
type FileContent struct {
	Storage struct {
		Provider  string `toml:"provider"`
		Container string `toml:"container"`
	} `toml:"storage"`
	Measure struct {
		SignExpiry      string `toml:"sign_expiry"`
		Timeout         string `toml:"timeout"`
		RequestTimeout  string `toml:"request_timeout"`
		VerifySize      *bool  `toml:"verify_size"`
		ContinueOnError *bool  `toml:"continue_on_error"`
	} `toml:"measure"`
}

// Flags returns CLI flags for the configuration file
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML configuration file",
			Destination: &c.Path,
			Sources:     cli.EnvVars("HTTPSESSIONS_CONFIG"),
		},
	}
}

// Load reads and decodes the file. It returns nil when no path is set.
func (c *File) Load() (*FileContent, error) {
	if c.Path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file",
			goerr.V("path", c.Path),
			goerr.T(types.ErrTagConfig),
		)
	}

	var content FileContent
	if err := toml.Unmarshal(raw, &content); err != nil {
		return nil, goerr.Wrap(err, "failed to decode config file",
			goerr.V("path", c.Path),
			goerr.T(types.ErrTagConfig),
		)
	}
	return &content, nil
}

// IsSetFunc reports whether a flag was given explicitly
type IsSetFunc func(name string) bool

// ApplyStorage fills storage fields not set explicitly
func (fc *FileContent) ApplyStorage(isSet IsSetFunc, s *Storage) {
	if fc == nil {
		return
	}
	if fc.Storage.Provider != "" && !isSet("provider") {
		s.Provider = fc.Storage.Provider
	}
	if fc.Storage.Container != "" && !isSet("container") {
		s.Container = fc.Storage.Container
	}
}

// ApplyMeasure fills measurement fields not set explicitly
func (fc *FileContent) ApplyMeasure(isSet IsSetFunc, m *Measure) error {
	if fc == nil {
		return nil
	}

	durations := []struct {
		flag  string
		value string
		dst   *time.Duration
	}{
		{"sign-expiry", fc.Measure.SignExpiry, &m.SignExpiry},
		{"timeout", fc.Measure.Timeout, &m.Timeout},
		{"request-timeout", fc.Measure.RequestTimeout, &m.RequestTimeout},
	}
	for _, d := range durations {
		if d.value == "" || isSet(d.flag) {
			continue
		}
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return goerr.Wrap(err, "invalid duration in config file",
				goerr.V("key", d.flag),
				goerr.V("value", d.value),
				goerr.T(types.ErrTagConfig),
			)
		}
		*d.dst = v
	}

	if fc.Measure.VerifySize != nil && !isSet("verify-size") {
		m.VerifySize = *fc.Measure.VerifySize
	}
	if fc.Measure.ContinueOnError != nil && !isSet("continue-on-error") {
		m.ContinueOnError = *fc.Measure.ContinueOnError
	}
	return nil
}
