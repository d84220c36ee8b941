// debpart-mirror materializes the partitions produced by debpart: for
// every pool file referenced by a partition's index subset, it copies
// (or symlinks) the file from a local archive mirror into the partition
// directory, skipping files that are already present.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	gopath "path"
	"path/filepath"

	"github.com/Debian/debpart/internal/catalog"
	"github.com/Debian/debpart/internal/humanbytes"
	"github.com/Debian/debpart/internal/write"

	"golang.org/x/sync/errgroup"
	"pault.ag/go/debian/control"
)

type verboseLogger bool

func (v verboseLogger) Printf(format string, args ...interface{}) {
	if !bool(v) {
		return
	}
	log.Output(2, fmt.Sprintf(format, args...))
}

type invocation struct {
	mirror  string
	parts   string
	symlink bool
	verbose bool
}

func (i *invocation) V() verboseLogger {
	return verboseLogger(i.verbose)
}

// binaryFiles returns the pool paths referenced by a partition's binary
// index subset.
func binaryFiles(path string) ([]string, error) {
	r, closer, err := catalog.OpenIndex(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	var stanzas []struct {
		Package  string
		Filename string
	}
	if err := control.Unmarshal(&stanzas, r); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	var files []string
	for _, st := range stanzas {
		if st.Filename != "" {
			files = append(files, st.Filename)
		}
	}
	return files, nil
}

// sourceFiles returns the pool paths referenced by a partition's source
// index subset.
func sourceFiles(path string) ([]string, error) {
	r, closer, err := catalog.OpenIndex(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	var stanzas []struct {
		Package   string
		Directory string
		Files     []control.MD5FileHash `control:"Files" delim:"\n" strip:"\n\r\t "`
	}
	if err := control.Unmarshal(&stanzas, r); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	var files []string
	for _, st := range stanzas {
		for _, f := range st.Files {
			if f.Filename == "" {
				continue
			}
			files = append(files, gopath.Join(st.Directory, f.Filename))
		}
	}
	return files, nil
}

// place copies or symlinks one pool file into the partition directory.
func (i *invocation) place(dir, rel string) (int64, error) {
	dest := filepath.Join(dir, filepath.FromSlash(rel))
	if _, err := os.Stat(dest); err == nil {
		return 0, nil // file already exists
	}
	src := filepath.Join(i.mirror, filepath.FromSlash(rel))
	fi, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("%s not found in mirror: %v", rel, err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, err
	}
	if i.symlink {
		target, err := filepath.Abs(src)
		if err != nil {
			return 0, err
		}
		return fi.Size(), os.Symlink(target, dest)
	}
	f, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	if err := write.Atomically(dest, func(w io.Writer) error {
		_, err := io.Copy(w, f)
		return err
	}); err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// materialize fills one partition directory from its index subsets and
// returns the number of bytes placed.
func (i *invocation) materialize(dir string) (int64, error) {
	var files []string
	if index := filepath.Join(dir, "Packages.gz"); exists(index) {
		paths, err := binaryFiles(index)
		if err != nil {
			return 0, err
		}
		files = append(files, paths...)
	}
	if index := filepath.Join(dir, "Sources.gz"); exists(index) {
		paths, err := sourceFiles(index)
		if err != nil {
			return 0, err
		}
		files = append(files, paths...)
	}

	var eg errgroup.Group
	sums := make([]int64, len(files))
	for idx, rel := range files {
		idx, rel := idx, rel // copy
		eg.Go(func() error {
			n, err := i.place(dir, rel)
			sums[idx] = n
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}
	var sum int64
	for _, n := range sums {
		sum += n
	}
	return sum, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func main() {
	var i invocation

	flag.StringVar(&i.mirror, "mirror",
		"",
		"Root of the local archive mirror to take pool files from")

	flag.StringVar(&i.parts, "parts",
		"debian-media",
		"Directory containing the partitions produced by debpart")

	flag.BoolVar(&i.symlink, "symlink",
		false,
		"Symlink pool files instead of copying them")

	flag.BoolVar(&i.verbose, "verbose",
		false,
		"Whether to print progress messages to stderr")

	flag.Parse()

	if i.mirror == "" {
		log.Fatalf("-mirror is required")
	}

	entries, err := ioutil.ReadDir(i.parts)
	if err != nil {
		log.Fatal(err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(i.parts, entry.Name())
		sum, err := i.materialize(dir)
		if err != nil {
			log.Fatal(err)
		}
		i.V().Printf("partition %s: placed %s", entry.Name(), humanbytes.Format(sum))
	}
}
