package model

import (
	"sort"
	"strconv"
	"time"
)

// Object describes one remote blob as returned by a listing
type Object struct {
	Name string
	Size *int64 // nil when the backend does not report a content length
}

// NewObject creates an Object with a known size
func NewObject(name string, size int64) *Object {
	return &Object{Name: name, Size: &size}
}

// SizeString returns the declared size for display, or "unknown"
func (o *Object) SizeString() string {
	if o.Size == nil {
		return "unknown"
	}
	return strconv.FormatInt(*o.Size, 10)
}

// SortBySize orders objects ascending by declared size. Objects without a size
// come first. The sort is stable so ties keep their listing order.
func SortBySize(objects []*Object) {
	sort.SliceStable(objects, func(i, j int) bool {
		a, b := objects[i].Size, objects[j].Size
		switch {
		case a == nil:
			return b != nil
		case b == nil:
			return false
		default:
			return *a < *b
		}
	})
}

// SignedURL grants time-limited read access to a single object
type SignedURL struct {
	URL       string
	ExpiresAt time.Time
}

// Expired reports whether the URL is no longer valid at t
func (u *SignedURL) Expired(t time.Time) bool {
	return !t.Before(u.ExpiresAt)
}
