package utils

import (
	"time"
)

const timestampLayout = "2006-01-02 15:04"

// FormatTimestamp renders value in the local time zone with minute precision.
// The zero time renders as an empty string.
func FormatTimestamp(value time.Time) string {
	if value.IsZero() {
		return EmptyString
	}
	return value.In(time.Local).Format(timestampLayout)
}
