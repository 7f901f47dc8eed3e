package usecase_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/httpsessions/pkg/domain/model"
	"github.com/m-mizutani/httpsessions/pkg/usecase"
)

func TestReporter(t *testing.T) {
	var out bytes.Buffer
	r := usecase.NewReporter(&out, false)

	obj := model.NewObject("sample.bin", 2048)
	r.Downloading(obj)
	r.Downloaded(&model.DownloadResult{Elapsed: 1500 * time.Millisecond, Bytes: 2048})
	r.Overhead(-25 * time.Millisecond)

	want := "Downloading 2048 bytes from blob 'sample.bin'...\n" +
		"Downloaded 2048 bytes in 1.5s\n" +
		"Cold overhead: -25ms\n" +
		"\n"
	gt.Equal(t, out.String(), want)
}

func TestReporter_Failures(t *testing.T) {
	t.Run("nothing printed without failures", func(t *testing.T) {
		var out bytes.Buffer
		usecase.NewReporter(&out, false).Failures(nil)
		gt.Equal(t, out.Len(), 0)
	})

	t.Run("each failure and a count", func(t *testing.T) {
		var out bytes.Buffer
		usecase.NewReporter(&out, false).Failures([]*model.Failure{
			{Object: model.NewObject("a", 1), Err: errors.New("boom")},
		})
		gt.Equal(t, out.String(), "Failed: a: boom\n1 object(s) failed\n")
	})
}

func TestReporter_Color(t *testing.T) {
	var out bytes.Buffer
	usecase.NewReporter(&out, true).Overhead(time.Second)
	gt.S(t, out.String()).Contains("\x1b[")
	gt.S(t, out.String()).Contains("Cold overhead: 1s")
}

func TestReporter_Listing(t *testing.T) {
	var out bytes.Buffer
	r := usecase.NewReporter(&out, false)
	r.Listing(model.NewObject("a.bin", 10))
	r.Listing(&model.Object{Name: "b.bin"})
	gt.Equal(t, out.String(), "10\ta.bin\nunknown\tb.bin\n")
}
