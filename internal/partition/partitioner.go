package partition

import (
	"log"

	"github.com/Debian/debpart/internal/catalog"
	"github.com/Debian/debpart/internal/humanbytes"
)

// Partitioner assigns an ordered package list to capacity-bounded
// partitions in a single forward pass, and places each package's source
// either into a parallel source partition sequence (the default) or,
// in merge mode, charges it into the package partition itself.
type Partitioner struct {
	Packages *catalog.Packages
	Sources  *catalog.Sources // nil when no source index was parsed

	PkgCapacities CapacitySequence
	SrcCapacities CapacitySequence // defaults to PkgCapacities

	// Max bounds how many partitions may be produced in either
	// sequence; 0 means unlimited. Reaching it truncates the remaining
	// input without error.
	Max int

	// MergeSources charges a package's source bytes into the same
	// partition as the package, the first time that source is seen.
	MergeSources bool

	// IgnoreOversized drops (with a warning) items that alone exceed
	// their partition's capacity instead of aborting the run.
	IgnoreOversized bool

	// Warnf receives recoverable-condition reports. Defaults to
	// log.Printf.
	Warnf func(format string, args ...interface{})
}

// Result of one partitioning run.
type Result struct {
	// Packages is the package partition list; concatenating its Names
	// in order reproduces the input list minus Skipped and Truncated.
	Packages []Partition

	// Sources holds the source partitions. In separate-source mode this
	// is an independent sequence under its own capacities; in merge
	// mode entry i lists the sources whose bytes were charged into
	// package partition i.
	Sources []Partition

	// Skipped lists oversized items dropped under IgnoreOversized.
	Skipped []string

	// Truncated lists the packages left unassigned because the
	// partition budget was reached.
	Truncated []string
}

// Run partitions the packages named by order. It fails only with an
// *OversizedError, and only when IgnoreOversized is unset.
func (pt *Partitioner) Run(order []string) (*Result, error) {
	warnf := pt.Warnf
	if warnf == nil {
		warnf = log.Printf
	}
	srcCaps := pt.SrcCapacities
	if len(srcCaps) == 0 {
		srcCaps = pt.PkgCapacities
	}

	pkgs := &Sequence{Capacities: pt.PkgCapacities, Max: pt.Max}
	var srcs *Sequence
	if pt.Sources != nil && !pt.MergeSources {
		srcs = &Sequence{Capacities: srcCaps, Max: pt.Max}
	}

	res := &Result{}
	charged := make(map[string]bool) // merge mode: source bytes already charged
	placed := make(map[string]bool)  // separate mode: sources already placed (or dropped)
	var merged []Partition           // merge mode: charged sources per package partition

	for left := 0; left < len(order); left++ {
		name := order[left]
		size := pt.Packages.Size(name)

		var src string
		var srcSize int64
		if pt.Sources != nil {
			if s, ok := pt.Sources.SourceOf(name); ok {
				src = s
				srcSize = pt.Sources.Size(s)
			}
		}

		if pt.MergeSources {
			charge := size
			chargeSrc := src != "" && !charged[src]
			if chargeSrc {
				charge += srcSize
			}
			if !pkgs.Fits(charge) {
				if pkgs.Empty() {
					if !pt.IgnoreOversized {
						return nil, &OversizedError{Name: name, Size: charge, Capacity: pkgs.Capacity()}
					}
					warnf("dropping %s: %s exceeds the partition capacity of %s",
						name, humanbytes.Format(charge), humanbytes.Format(pkgs.Capacity()))
					res.Skipped = append(res.Skipped, name)
					continue
				}
				if !pkgs.Advance() {
					res.Truncated = append([]string(nil), order[left:]...)
					break
				}
				left-- // retry in the fresh partition
				continue
			}
			pkgs.Append(name, charge)
			if chargeSrc {
				charged[src] = true
				for len(merged) <= pkgs.Index() {
					merged = append(merged, Partition{})
				}
				merged[pkgs.Index()].Names = append(merged[pkgs.Index()].Names, src)
				merged[pkgs.Index()].Size += srcSize
			}
			continue
		}

		// Separate-source mode: the package partition decision comes
		// first, then the source must find room in the source sequence.
		if !pkgs.Fits(size) {
			if pkgs.Empty() {
				if !pt.IgnoreOversized {
					return nil, &OversizedError{Name: name, Size: size, Capacity: pkgs.Capacity()}
				}
				warnf("dropping %s: %s exceeds the partition capacity of %s",
					name, humanbytes.Format(size), humanbytes.Format(pkgs.Capacity()))
				res.Skipped = append(res.Skipped, name)
				continue
			}
			if !pkgs.Advance() {
				res.Truncated = append([]string(nil), order[left:]...)
				break
			}
			left--
			continue
		}
		if srcs != nil && src != "" && !placed[src] {
			if srcs.Fits(srcSize) {
				srcs.Append(src, srcSize)
				placed[src] = true
			} else if srcs.Empty() {
				// The source alone exceeds its partition's capacity.
				if !pt.IgnoreOversized {
					return nil, &OversizedError{Name: src, Size: srcSize, Capacity: srcs.Capacity()}
				}
				warnf("dropping source %s: %s exceeds the source partition capacity of %s",
					src, humanbytes.Format(srcSize), humanbytes.Format(srcs.Capacity()))
				res.Skipped = append(res.Skipped, src)
				placed[src] = true // don't retry for sibling binaries
			} else {
				// The current source partition is full, so the package
				// cannot extend the current partition either: close
				// both and retry the package in fresh ones.
				srcOK := srcs.Advance()
				pkgOK := pkgs.Empty() || pkgs.Advance()
				if !srcOK || !pkgOK {
					res.Truncated = append([]string(nil), order[left:]...)
					break
				}
				left--
				continue
			}
		}
		pkgs.Append(name, size)
	}

	res.Packages = pkgs.Partitions()
	if srcs != nil {
		res.Sources = srcs.Partitions()
	} else if pt.MergeSources {
		res.Sources = merged
	}
	return res, nil
}
