// Package timespec parses the --last-accessed argument: either a point in
// time or a duration counted back from now.
package timespec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"
)

// ErrInvalid is returned when the input is neither a timestamp nor a duration.
var ErrInvalid = errors.New("invalid time")

// layouts are tried in order. Timestamps without a zone are UTC.
var layouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse returns the instant described by s. A duration such as "2w3d" or
// "1h 30m" is subtracted from now.
func Parse(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalid)
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	d, err := str2duration.ParseDuration(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected a timestamp like 2018-01-01 12:53:00 or a duration like 2w3d", ErrInvalid, s)
	}
	if d < 0 {
		return time.Time{}, fmt.Errorf("%w %q: negative duration", ErrInvalid, s)
	}
	return now.Add(-d), nil
}
