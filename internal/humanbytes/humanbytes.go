// Package humanbytes converts between byte counts and human-readable
// size strings. Parse accepts the binary (K, KiB) and decimal (KB)
// suffix families; capacity flags like -pkg_size go through it.
package humanbytes

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	suffixes = map[string]int64{
		"B": 1,
		"K": 1024,
		"M": 1024 * 1024,
		"G": 1024 * 1024 * 1024,
		"T": 1024 * 1024 * 1024 * 1024,
		"P": 1024 * 1024 * 1024 * 1024 * 1024,

		"KiB": 1024,
		"MiB": 1024 * 1024,
		"GiB": 1024 * 1024 * 1024,
		"TiB": 1024 * 1024 * 1024 * 1024,
		"PiB": 1024 * 1024 * 1024 * 1024 * 1024,

		"KB": 1000,
		"MB": 1000 * 1000,
		"GB": 1000 * 1000 * 1000,
		"TB": 1000 * 1000 * 1000 * 1000,
		"PB": 1000 * 1000 * 1000 * 1000 * 1000,
	}

	suffixOrder = []string{
		"P", "PiB", "PB",
		"T", "TiB", "TB",
		"G", "GiB", "GB",
		"M", "MiB", "MB",
		"K", "KiB", "KB",
		"B"}

	// parseOrder tries the longest suffixes first so that "1KiB" matches
	// KiB, never the trailing B.
	parseOrder = []string{
		"KiB", "MiB", "GiB", "TiB", "PiB",
		"KB", "MB", "GB", "TB", "PB",
		"K", "M", "G", "T", "P",
		"B"}
)

func Format(b int64) string {
	for _, suffix := range suffixOrder {
		divisor := suffixes[suffix]
		if b < divisor {
			continue
		}

		if suffix == "B" {
			return fmt.Sprintf("%dB", b)
		}
		return fmt.Sprintf("%.2f%s", float64(b)/float64(divisor), suffix)
	}
	return fmt.Sprintf("%dB", b)
}

func Parse(s string) (int64, error) {
	for _, suffix := range parseOrder {
		if !strings.HasSuffix(s, suffix) {
			continue
		}
		b, err := strconv.ParseInt(strings.TrimSuffix(s, suffix), 0, 64)
		if err != nil {
			return 0, err
		}
		return b * suffixes[suffix], nil
	}
	// No suffix: try parsing as a byte value
	return strconv.ParseInt(s, 0, 64)
}
