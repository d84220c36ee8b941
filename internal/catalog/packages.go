// Package catalog indexes the binary and source packages of an archive
// across however many per-architecture index documents are parsed into
// it. Catalogs are populated once at startup and read-only afterwards.
package catalog

import (
	"fmt"
	"io"
	"strconv"

	"pault.ag/go/debian/control"
	"pault.ag/go/debian/version"
)

// binaryStanza contains precisely the fields we are interested in,
// resulting in a more memory- and CPU-efficient parsing than using
// control.BinaryIndex. The embedded Paragraph retains the raw stanza so
// that partition subsets can be re-emitted verbatim. Size and Version
// stay strings (as in control.BinaryIndex); a missing or malformed
// value degrades to zero instead of failing the whole document.
type binaryStanza struct {
	control.Paragraph

	Package  string
	Version  string
	Size     string
	Filename string
}

func (st *binaryStanza) size() int64 {
	size, err := strconv.ParseInt(st.Size, 10, 64)
	if err != nil {
		return 0
	}
	return size
}

func (st *binaryStanza) version() version.Version {
	ver, err := version.Parse(st.Version)
	if err != nil {
		return version.Version{}
	}
	return ver
}

// Packages is a deduplicated registry of binary packages. Multiple
// architecture or category builds frequently reference the same pool
// file; each underlying Filename contributes to the totals exactly once
// regardless of how many documents mention it.
type Packages struct {
	sizes    map[string]int64
	versions map[string]version.Version
	paras    map[string]control.Paragraph
	order    []string
	counted  map[string]bool // Filename paths already counted
	total    int64
}

func NewPackages() *Packages {
	return &Packages{
		sizes:    make(map[string]int64),
		versions: make(map[string]version.Version),
		paras:    make(map[string]control.Paragraph),
		counted:  make(map[string]bool),
	}
}

// Parse adds all stanzas of one binary index document. Stanzas with
// missing fields are tolerated: their absent values contribute zero.
func (p *Packages) Parse(r io.Reader) error {
	var stanzas []binaryStanza
	if err := control.Unmarshal(&stanzas, r); err != nil {
		return fmt.Errorf("parsing binary index: %v", err)
	}
	for _, st := range stanzas {
		p.add(st)
	}
	return nil
}

func (p *Packages) add(st binaryStanza) {
	if st.Package == "" {
		return // tolerate malformed stanza
	}
	if !p.counted[st.Filename] {
		p.counted[st.Filename] = true
		p.total += st.size()
	}
	ver := st.version()
	if existing, ok := p.versions[st.Package]; ok {
		if version.Compare(ver, existing) <= 0 {
			return // keep the newer build
		}
	} else {
		p.order = append(p.order, st.Package)
	}
	p.versions[st.Package] = ver
	p.sizes[st.Package] = st.size()
	p.paras[st.Package] = st.Paragraph
}

// Size returns the byte size of the named package, or 0 if unknown.
func (p *Packages) Size(name string) int64 {
	return p.sizes[name]
}

// SizeAll returns the summed size of the named packages; unknown names
// count as zero.
func (p *Packages) SizeAll(names []string) int64 {
	var sum int64
	for _, name := range names {
		sum += p.sizes[name]
	}
	return sum
}

func (p *Packages) Has(name string) bool {
	_, ok := p.sizes[name]
	return ok
}

// Names returns all package names in order of first appearance.
func (p *Packages) Names() []string {
	return append([]string(nil), p.order...)
}

// Paragraph returns the retained index stanza for the named package.
func (p *Packages) Paragraph(name string) (control.Paragraph, bool) {
	para, ok := p.paras[name]
	return para, ok
}

// Total is the size of all underlying pool files, each counted exactly
// once.
func (p *Packages) Total() int64 {
	return p.total
}

func (p *Packages) Len() int {
	return len(p.order)
}
