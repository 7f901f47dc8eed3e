package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures of a measurement run. Every error returned from
// the use case layer carries one of them. An interrupted transfer also carries
// ErrTagCancelled on top of ErrTagTransfer.
var (
	ErrTagConfig         = goerr.NewTag("config")
	ErrTagList           = goerr.NewTag("list")
	ErrTagSign           = goerr.NewTag("sign")
	ErrTagTransfer       = goerr.NewTag("transfer")
	ErrTagSizeMismatch   = goerr.NewTag("size_mismatch")
	ErrTagPartialFailure = goerr.NewTag("partial_failure")
	ErrTagCancelled      = goerr.NewTag("cancelled")
)
