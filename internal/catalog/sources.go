package catalog

import (
	"fmt"
	"io"
	"path"

	"pault.ag/go/debian/control"
)

// sourceStanza contains precisely the fields we are interested in,
// resulting in a more memory- and CPU-efficient parsing than using
// control.SourceIndex.
type sourceStanza struct {
	control.Paragraph

	Package   string
	Binary    []string              `control:"Binary" delim:"," strip:"\n\r\t "`
	Directory string
	Files     []control.MD5FileHash `control:"Files" delim:"\n" strip:"\n\r\t "`
}

// Sources is a deduplicated registry of source packages plus the mapping
// from binary package names to the source that builds them. As with
// Packages, a pool file (keyed by directory and filename) is counted
// toward its source's aggregate size exactly once across all parsed
// documents.
type Sources struct {
	// Missing, when non-nil, is invoked at most once per distinct binary
	// name whose source is not known to the catalog.
	Missing func(binary string)

	sizes   map[string]int64
	paras   map[string]control.Paragraph
	srcOf   map[string]string // binary name → source name
	order   []string
	counted map[string]bool // directory/filename pairs already counted
	warned  map[string]bool // binaries already reported through Missing
}

func NewSources() *Sources {
	return &Sources{
		sizes:   make(map[string]int64),
		paras:   make(map[string]control.Paragraph),
		srcOf:   make(map[string]string),
		counted: make(map[string]bool),
		warned:  make(map[string]bool),
	}
}

// Parse adds all stanzas of one source index document. The sizes of the
// files listed under a stanza's Files field are summed into the source's
// aggregate size.
func (s *Sources) Parse(r io.Reader) error {
	var stanzas []sourceStanza
	if err := control.Unmarshal(&stanzas, r); err != nil {
		return fmt.Errorf("parsing source index: %v", err)
	}
	for _, st := range stanzas {
		s.add(st)
	}
	return nil
}

func (s *Sources) add(st sourceStanza) {
	if st.Package == "" {
		return // tolerate malformed stanza
	}
	if _, ok := s.sizes[st.Package]; !ok {
		s.order = append(s.order, st.Package)
		s.sizes[st.Package] = 0
		s.paras[st.Package] = st.Paragraph
	}
	for _, f := range st.Files {
		if f.Filename == "" {
			continue
		}
		key := path.Join(st.Directory, f.Filename)
		if s.counted[key] {
			continue
		}
		s.counted[key] = true
		s.sizes[st.Package] += f.Size
	}
	for _, bin := range st.Binary {
		if bin == "" {
			continue
		}
		s.srcOf[bin] = st.Package
	}
}

// Size returns the aggregate byte size of the named source package, or 0
// if unknown.
func (s *Sources) Size(name string) int64 {
	return s.sizes[name]
}

// SourceOf resolves a binary package name to its source package. A
// binary without a known source is reported through Missing, but only
// the first time it is asked about.
func (s *Sources) SourceOf(binary string) (string, bool) {
	src, ok := s.srcOf[binary]
	if !ok && !s.warned[binary] {
		s.warned[binary] = true
		if s.Missing != nil {
			s.Missing(binary)
		}
	}
	return src, ok
}

// SourcesOf resolves a list of binary package names to the deduplicated
// list of their source packages, in order of first appearance.
func (s *Sources) SourcesOf(binaries []string) []string {
	var srcs []string
	seen := make(map[string]bool)
	for _, bin := range binaries {
		src, ok := s.SourceOf(bin)
		if !ok || seen[src] {
			continue
		}
		seen[src] = true
		srcs = append(srcs, src)
	}
	return srcs
}

// Names returns all source package names in order of first appearance.
func (s *Sources) Names() []string {
	return append([]string(nil), s.order...)
}

// Paragraph returns the retained index stanza for the named source.
func (s *Sources) Paragraph(name string) (control.Paragraph, bool) {
	para, ok := s.paras[name]
	return para, ok
}

func (s *Sources) Len() int {
	return len(s.order)
}
