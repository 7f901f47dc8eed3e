package usecase

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/httpsessions/pkg/domain/model"
)

// Reporter writes the human-readable measurement lines
type Reporter struct {
	w        io.Writer
	overhead *color.Color
	failure  *color.Color
}

// NewReporter creates a Reporter writing to w. Colors are only emitted when
// enableColor is true.
func NewReporter(w io.Writer, enableColor bool) *Reporter {
	overhead := color.New(color.FgCyan)
	failure := color.New(color.FgRed)
	if enableColor {
		overhead.EnableColor()
		failure.EnableColor()
	} else {
		overhead.DisableColor()
		failure.DisableColor()
	}

	return &Reporter{
		w:        w,
		overhead: overhead,
		failure:  failure,
	}
}

// Downloading announces a download before it starts
func (r *Reporter) Downloading(obj *model.Object) {
	fmt.Fprintf(r.w, "Downloading %s bytes from blob '%s'...\n", obj.SizeString(), obj.Name)
}

// Downloaded prints the bytes received and the elapsed time of one download
func (r *Reporter) Downloaded(result *model.DownloadResult) {
	fmt.Fprintf(r.w, "Downloaded %d bytes in %s\n", result.Bytes, result.Elapsed)
}

// Overhead prints cold minus warm elapsed time for one object
func (r *Reporter) Overhead(d time.Duration) {
	r.overhead.Fprintf(r.w, "Cold overhead: %s\n", d)
	fmt.Fprintln(r.w)
}

// Failures prints the objects that could not be measured
func (r *Reporter) Failures(failures []*model.Failure) {
	if len(failures) == 0 {
		return
	}
	for _, f := range failures {
		r.failure.Fprintf(r.w, "Failed: %s: %v\n", f.Object.Name, f.Err)
	}
	r.failure.Fprintf(r.w, "%d object(s) failed\n", len(failures))
}

// Listing prints one object of the list command
func (r *Reporter) Listing(obj *model.Object) {
	fmt.Fprintf(r.w, "%s\t%s\n", obj.SizeString(), obj.Name)
}
