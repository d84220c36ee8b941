package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"pault.ag/go/debian/control"
	"pault.ag/go/debian/deb"
)

// OpenIndex opens an index document, transparently decompressing it
// based on its file extension (.gz, .xz, .bz2, .lzma). Any other
// extension is read as plain text. The returned closer closes the
// underlying file.
func OpenIndex(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	decompress := deb.DecompressorFor(filepath.Ext(path))
	if decompress == nil {
		return f, f, nil
	}
	r, err := decompress(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("decompressing %s: %v", path, err)
	}
	return r, f, nil
}

// loadParallel opens and parses the given documents concurrently. The
// parse callback only fills per-document state; merging into the catalog
// happens afterwards, sequentially.
func loadParallel(paths []string, parse func(idx int, r io.Reader) error) error {
	var eg errgroup.Group
	for idx, path := range paths {
		idx, path := idx, path // copy
		eg.Go(func() error {
			r, closer, err := OpenIndex(path)
			if err != nil {
				return err
			}
			defer closer.Close()
			if err := parse(idx, r); err != nil {
				return fmt.Errorf("%s: %v", path, err)
			}
			return nil
		})
	}
	return eg.Wait()
}

// Load parses the given binary index documents into the catalog.
// Documents are read in parallel; the merge is sequential in argument
// order, keeping the file dedup deterministic.
func (p *Packages) Load(paths ...string) error {
	parsed := make([][]binaryStanza, len(paths))
	err := loadParallel(paths, func(idx int, r io.Reader) error {
		var stanzas []binaryStanza
		if err := control.Unmarshal(&stanzas, r); err != nil {
			return err
		}
		parsed[idx] = stanzas
		return nil
	})
	if err != nil {
		return err
	}
	for _, stanzas := range parsed {
		for _, st := range stanzas {
			p.add(st)
		}
	}
	return nil
}

// Load parses the given source index documents into the catalog, with
// the same parallel-read, sequential-merge scheme as Packages.Load.
func (s *Sources) Load(paths ...string) error {
	parsed := make([][]sourceStanza, len(paths))
	err := loadParallel(paths, func(idx int, r io.Reader) error {
		var stanzas []sourceStanza
		if err := control.Unmarshal(&stanzas, r); err != nil {
			return err
		}
		parsed[idx] = stanzas
		return nil
	})
	if err != nil {
		return err
	}
	for _, stanzas := range parsed {
		for _, st := range stanzas {
			s.add(st)
		}
	}
	return nil
}
