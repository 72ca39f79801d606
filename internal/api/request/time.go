package request

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidTime is returned for start times in no accepted layout
var ErrInvalidTime = errors.New("invalid time")

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseStartTime parses an RFC 3339 timestamp, or a zone-less
// datetime-local value which is taken to be UTC
func ParseStartTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTime
}
