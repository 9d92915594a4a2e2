package utils

import (
	"fmt"
	"strings"
)

const byteUnitBase = 1024

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatFileSize converts a byte count into a short human-readable string such as "1.5 KB".
// Negative counts are reported as zero.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	value := float64(bytes)
	unitIndex := 0
	for value >= byteUnitBase && unitIndex < len(byteUnits)-1 {
		value /= byteUnitBase
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%d %s", bytes, byteUnits[0])
	}
	if value < 10 {
		return strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0") + " " + byteUnits[unitIndex]
	}
	return fmt.Sprintf("%.0f %s", value, byteUnits[unitIndex])
}
