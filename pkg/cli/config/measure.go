package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/httpsessions/pkg/domain/types"
	"github.com/m-mizutani/httpsessions/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Measure holds measurement behavior configuration
type Measure struct {
	SignExpiry      time.Duration
	Timeout         time.Duration
	RequestTimeout  time.Duration
	VerifySize      bool
	ContinueOnError bool
	NoColor         bool
}

// Flags returns CLI flags for measurement configuration
func (c *Measure) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "sign-expiry",
			Usage:       "Lifetime of each signed URL (clamped by providers with a shorter limit)",
			Value:       usecase.DefaultSignExpiry,
			Destination: &c.SignExpiry,
			Sources:     cli.EnvVars("HTTPSESSIONS_SIGN_EXPIRY"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Abort the whole run after this duration (0 disables)",
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("HTTPSESSIONS_TIMEOUT"),
		},
		&cli.DurationFlag{
			Name:        "request-timeout",
			Usage:       "Abort a single download after this duration (0 disables)",
			Destination: &c.RequestTimeout,
			Sources:     cli.EnvVars("HTTPSESSIONS_REQUEST_TIMEOUT"),
		},
		&cli.BoolFlag{
			Name:        "verify-size",
			Usage:       "Fail when received bytes differ from the declared object size",
			Destination: &c.VerifySize,
			Sources:     cli.EnvVars("HTTPSESSIONS_VERIFY_SIZE"),
		},
		&cli.BoolFlag{
			Name:        "continue-on-error",
			Usage:       "Keep measuring remaining objects after a failure and summarize failures at the end",
			Destination: &c.ContinueOnError,
			Sources:     cli.EnvVars("HTTPSESSIONS_CONTINUE_ON_ERROR"),
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored report output (also disabled by any non-empty NO_COLOR)",
			Destination: &c.NoColor,
			Sources:     cli.EnvVars("HTTPSESSIONS_NO_COLOR"),
		},
	}
}

// ColorEnabled reports whether the report may be colored. NO_COLOR follows
// https://no-color.org: any non-empty value disables color.
func (c *Measure) ColorEnabled() bool {
	return !c.NoColor && os.Getenv("NO_COLOR") == ""
}

// Validate rejects durations that cannot produce a meaningful run
func (c *Measure) Validate() error {
	if c.SignExpiry <= 0 {
		return goerr.New("sign expiry must be positive",
			goerr.V("sign_expiry", c.SignExpiry),
			goerr.T(types.ErrTagConfig),
		)
	}
	if c.Timeout < 0 || c.RequestTimeout < 0 {
		return goerr.New("timeouts must not be negative",
			goerr.V("timeout", c.Timeout),
			goerr.V("request_timeout", c.RequestTimeout),
			goerr.T(types.ErrTagConfig),
		)
	}
	return nil
}
