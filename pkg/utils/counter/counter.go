// Package counter provides a write-only sink that only counts what it receives.
package counter

// Writer discards written bytes and keeps their running total. The zero value
// is ready to use. A Writer must not be shared between downloads.
type Writer struct {
	n int64
}

// New returns an empty Writer
func New() *Writer {
	return &Writer{}
}

// Write counts p and drops it. It never fails.
func (w *Writer) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

// Len returns the number of bytes written so far
func (w *Writer) Len() int64 {
	return w.n
}
