package partition

import (
	"fmt"

	"github.com/Debian/debpart/internal/humanbytes"
)

// A Partition is one output unit of the split archive: the names
// assigned to it, in placement order, and their accumulated size.
type Partition struct {
	Names []string
	Size  int64
}

// OversizedError reports a single item whose size alone exceeds the
// capacity of the empty partition it would have to open.
type OversizedError struct {
	Name     string
	Size     int64
	Capacity int64
}

func (e *OversizedError) Error() string {
	return fmt.Sprintf("partition too small for %s: %s exceeds the capacity of %s",
		e.Name, humanbytes.Format(e.Size), humanbytes.Format(e.Capacity))
}

// Sequence accumulates items into partitions using next-fit: the
// current partition is filled until the next item no longer fits, then
// closed for good and a fresh one opened. Closed partitions are never
// reconsidered.
type Sequence struct {
	Capacities CapacitySequence
	Max        int // maximum partition count, 0 = unlimited

	parts []Partition
	cur   Partition
	idx   int
	done  bool
}

// Capacity returns the capacity of the partition currently being filled.
func (s *Sequence) Capacity() int64 {
	return s.Capacities.At(s.idx)
}

// Index returns the index of the partition currently being filled.
func (s *Sequence) Index() int {
	return s.idx
}

// Empty reports whether the current partition holds no items yet.
func (s *Sequence) Empty() bool {
	return len(s.cur.Names) == 0
}

// Fits reports whether an item of the given size still fits into the
// current partition.
func (s *Sequence) Fits(size int64) bool {
	return s.cur.Size+size <= s.Capacity()
}

// Append places an item into the current partition unconditionally.
func (s *Sequence) Append(name string, size int64) {
	s.cur.Names = append(s.cur.Names, name)
	s.cur.Size += size
}

// Advance closes the current partition and opens the next one. It
// reports false once the partition budget is exhausted; from then on the
// sequence accepts nothing further.
func (s *Sequence) Advance() bool {
	if s.done {
		return false
	}
	s.parts = append(s.parts, s.cur)
	s.cur = Partition{}
	s.idx++
	if s.Max > 0 && s.idx >= s.Max {
		s.done = true
		return false
	}
	return true
}

// Done reports whether the partition budget has been exhausted.
func (s *Sequence) Done() bool {
	return s.done
}

// Partitions closes the sequence and returns all partitions produced.
func (s *Sequence) Partitions() []Partition {
	if !s.Empty() {
		s.parts = append(s.parts, s.cur)
		s.cur = Partition{}
	}
	return s.parts
}
