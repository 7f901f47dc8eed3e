// Package connstr parses "Key=Value;Key=Value" connection strings.
package connstr

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Values holds parsed connection string entries. Keys are case-insensitive.
type Values map[string]string

// Parse splits s into entries. Empty segments are ignored and values may
// contain '='.
func Parse(s string) (Values, error) {
	values := Values{}
	for i, segment := range strings.Split(s, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		key, value, ok := strings.Cut(segment, "=")
		key = strings.TrimSpace(key)
		// segments may hold credentials, so only their position is reported
		if !ok || key == "" {
			return nil, goerr.New("malformed connection string segment",
				goerr.V("index", i),
			)
		}
		values[strings.ToLower(key)] = strings.TrimSpace(value)
	}
	return values, nil
}

// Get returns the value for key, or "" when absent
func (v Values) Get(key string) string {
	return v[strings.ToLower(key)]
}
