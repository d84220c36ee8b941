// Package partition implements the next-fit splitting of an ordered
// package list into capacity-bounded partitions, one per output medium.
package partition

import (
	"fmt"
	"strings"

	"github.com/Debian/debpart/internal/humanbytes"
	"github.com/Debian/debpart/internal/media"
)

// CapacitySequence is the ordered list of per-partition byte capacities.
// Once the explicit list is exhausted, the last entry is carried forward
// for all further partitions.
type CapacitySequence []int64

// At returns the capacity for partition index i.
func (c CapacitySequence) At(i int) int64 {
	if len(c) == 0 {
		return 0
	}
	if i >= len(c) {
		i = len(c) - 1
	}
	return c[i]
}

// aliasLike reports whether s lives in the media alias namespace, i.e.
// starts with a letter. Sizes always start with a digit.
func aliasLike(s string) bool {
	return len(s) > 0 && (s[0] < '0' || s[0] > '9')
}

// ParseCapacitySequence parses a comma-separated capacity list. Each
// element is either a media alias (cd74, dvd5, …) or a byte size in any
// format humanbytes accepts (650M, 4700000000). An unrecognized alias is
// reported through warnf and contributes a zero capacity, which the
// first placement attempt will then surface as an oversized item. A
// value that is neither alias-shaped nor a parseable size is an error.
func ParseCapacitySequence(s string, warnf func(format string, args ...interface{})) (CapacitySequence, error) {
	var seq CapacitySequence
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if capacity, ok := media.Capacity(field); ok {
			seq = append(seq, capacity)
			continue
		}
		if aliasLike(field) {
			warnf("unknown media alias %q, assuming zero capacity (known: %s)",
				field, strings.Join(media.Aliases(), ", "))
			seq = append(seq, 0)
			continue
		}
		b, err := humanbytes.Parse(field)
		if err != nil {
			return nil, fmt.Errorf("invalid capacity %q: %v", field, err)
		}
		seq = append(seq, b)
	}
	if len(seq) == 0 {
		return nil, fmt.Errorf("empty capacity sequence %q", s)
	}
	return seq, nil
}
