package model

import "time"

// DownloadResult represents one completed full-body download
type DownloadResult struct {
	Elapsed time.Duration
	Bytes   int64
}

// Measurement pairs the cold and warm downloads of one object
type Measurement struct {
	Object *Object
	Cold   *DownloadResult
	Warm   *DownloadResult
}

// Overhead is cold minus warm elapsed time. It is negative when the warm
// download was slower.
func (m *Measurement) Overhead() time.Duration {
	return m.Cold.Elapsed - m.Warm.Elapsed
}

// Failure records an object whose measurement did not complete
type Failure struct {
	Object *Object
	Err    error
}

// Report is the outcome of a whole run
type Report struct {
	Measurements []*Measurement
	Failures     []*Failure
}
