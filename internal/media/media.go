// Package media maps removable-media aliases to usable byte capacities.
package media

import "sort"

// nominal capacities in bytes. CD entries are derived from the audio
// playing time: minutes × 60 s × 75 blocks/s × 2048 bytes/block.
var nominal = map[string]int64{
	"cd74":  74 * 60 * 75 * 2048,
	"cd80":  80 * 60 * 75 * 2048,
	"cd90":  90 * 60 * 75 * 2048,
	"cd100": 100 * 60 * 75 * 2048,
	"dvd5":  4700000000,
	"dvd9":  8540000000,
}

// usableFactor models block/cluster overhead: the space taken up by
// written files exceeds their byte sizes, so only this fraction of the
// nominal capacity is usable for payload.
const usableFactor = 0.93

// Capacity resolves a media alias to its usable byte capacity. The
// second return value is false for unrecognized aliases.
func Capacity(alias string) (int64, bool) {
	raw, ok := nominal[alias]
	if !ok {
		return 0, false
	}
	return int64(float64(raw)*usableFactor + 0.5), true
}

// Aliases returns all recognized alias names, sorted.
func Aliases() []string {
	names := make([]string, 0, len(nominal))
	for name := range nominal {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
