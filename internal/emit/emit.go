// Package emit writes each closed partition's index subset back out as
// a compressed stanza document.
package emit

import (
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Debian/debpart/internal/catalog"
	"github.com/Debian/debpart/internal/partition"
	"github.com/Debian/debpart/internal/write"

	"pault.ag/go/debian/control"
)

// Emitter writes partition index subsets underneath Dest, one directory
// per partition.
type Emitter struct {
	Dest string

	// Labels optionally names the package partitions; indexes past its
	// end (or empty entries) fall back to the 1-based partition number.
	Labels []string
}

// Label returns the directory name for package partition i.
func (e *Emitter) Label(i int) string {
	if i < len(e.Labels) && e.Labels[i] != "" {
		return e.Labels[i]
	}
	return strconv.Itoa(i + 1)
}

// SourceLabel returns the directory name for source partition i in
// separate-source mode, where source partitions are their own media
// sequence.
func (e *Emitter) SourceLabel(i int) string {
	return "src" + strconv.Itoa(i+1)
}

// Packages writes each package partition's Packages.gz.
func (e *Emitter) Packages(parts []partition.Partition, cat *catalog.Packages) error {
	for i, part := range parts {
		dir := filepath.Join(e.Dest, e.Label(i))
		if err := writeStanzas(filepath.Join(dir, "Packages.gz"), part.Names, cat.Paragraph); err != nil {
			return err
		}
	}
	return nil
}

// Sources writes each source partition's Sources.gz. With merged unset
// the partitions form their own src<N> directory sequence; with merged
// set they share the package partition directories (entry i alongside
// package partition i).
func (e *Emitter) Sources(parts []partition.Partition, cat *catalog.Sources, merged bool) error {
	for i, part := range parts {
		if merged && len(part.Names) == 0 {
			continue // no new sources charged into this partition
		}
		label := e.SourceLabel(i)
		if merged {
			label = e.Label(i)
		}
		dir := filepath.Join(e.Dest, label)
		if err := writeStanzas(filepath.Join(dir, "Sources.gz"), part.Names, cat.Paragraph); err != nil {
			return err
		}
	}
	return nil
}

// writeStanzas writes the retained stanzas of the named entries as one
// gzip-compressed document. Names without a retained stanza (e.g.
// explicitly selected packages absent from the catalog) are skipped.
func writeStanzas(dest string, names []string, paragraph func(string) (control.Paragraph, bool)) error {
	return write.Atomically(dest, func(w io.Writer) error {
		zw := gzip.NewWriter(w)
		for _, name := range names {
			para, ok := paragraph(name)
			if !ok {
				continue
			}
			if err := writeParagraph(zw, para); err != nil {
				return err
			}
		}
		return zw.Close()
	})
}

// writeParagraph reproduces one stanza with its original field order.
// Continuation lines regain the leading space the parser strips.
func writeParagraph(w io.Writer, para control.Paragraph) error {
	for _, key := range para.Order {
		lines := strings.Split(para.Values[key], "\n")
		if lines[0] == "" {
			if _, err := fmt.Fprintf(w, "%s:\n", key); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(w, "%s: %s\n", key, lines[0]); err != nil {
				return err
			}
		}
		for _, line := range lines[1:] {
			if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
				line = " " + line
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
