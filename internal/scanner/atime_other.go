//go:build !linux && !darwin

package scanner

import (
	"io/fs"
	"time"
)

// accessTime is unavailable on this platform.
func accessTime(info fs.FileInfo) time.Time {
	return time.Time{}
}
