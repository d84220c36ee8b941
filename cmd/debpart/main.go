// debpart splits a package archive into an ordered sequence of
// fixed-capacity partitions (one per CD/DVD), writing each partition's
// Packages/Sources index subset to its own directory.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

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
	dest            string
	pkgSize         string
	srcSize         string
	maxPartitions   int
	mergeSources    bool
	ignoreOversized bool
	packages        string
	packagesFrom    string
	labels          string
	verbose         bool

	binIndices []string
	srcIndices []string
}

func (i *invocation) V() verboseLogger {
	return verboseLogger(i.verbose)
}

func (i *invocation) readConfig(configPath string) error {
	b, err := ioutil.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var config struct {
		Dest    string `control:"Dest"`
		PkgSize string `control:"Pkg-Size"`
		SrcSize string `control:"Src-Size"`
	}
	if err := control.Unmarshal(&config, bytes.NewReader(b)); err != nil {
		return err
	}
	i.V().Printf("read config from %s: %+v", configPath, config)
	// The config file only fills in flags that were not specified.
	if i.dest == "" {
		i.dest = config.Dest
	}
	if i.pkgSize == "" {
		i.pkgSize = config.PkgSize
	}
	if i.srcSize == "" {
		i.srcSize = config.SrcSize
	}
	return nil
}

func resolveTilde(s string) string {
	if !strings.HasPrefix(s, "~") {
		return s
	}
	// We need logic to resolve paths with a tilde prefix: bash passes such
	// paths unexpanded.
	homedir := os.Getenv("HOME")
	if homedir == "" {
		log.Fatalf("Cannot resolve path %q: environment variable $HOME empty", s)
	}
	return filepath.Join(homedir, strings.TrimPrefix(s, "~"))
}

func main() {
	var i invocation

	flag.StringVar(&i.dest, "dest",
		"",
		"Directory to write the per-partition index subsets to (default debian-media)")

	flag.StringVar(&i.pkgSize, "pkg_size",
		"",
		"Comma-separated capacity sequence for package partitions: media aliases (cd74, dvd5, …) or byte sizes (650M, 4700000000). The last entry is reused for all further partitions (default cd74)")

	flag.StringVar(&i.srcSize, "src_size",
		"",
		"Capacity sequence for source partitions (default: the -pkg_size sequence)")

	flag.IntVar(&i.maxPartitions, "max_partitions",
		0,
		"Maximum number of partitions to produce, 0 = unlimited. Packages beyond the limit are left out without error")

	flag.BoolVar(&i.mergeSources, "merge_sources",
		false,
		"Charge source bytes into the same partition as their binaries instead of building separate source partitions")

	flag.BoolVar(&i.ignoreOversized, "ignore_oversized",
		false,
		"Skip (with a warning) packages or sources that alone exceed a partition's capacity, instead of aborting")

	flag.StringVar(&i.packages, "packages",
		"",
		"Comma-separated package names to partition, in this order (default: all cataloged packages in catalog order)")

	flag.StringVar(&i.packagesFrom, "packages_from",
		"",
		"File listing one package name per line, appended to -packages")

	flag.StringVar(&i.labels, "labels",
		"",
		"Comma-separated partition directory names (default: 1, 2, …)")

	flag.BoolVar(&i.verbose, "verbose",
		false,
		"Whether to print progress messages to stderr")

	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatalf("Usage: %s [flags] [bin:]Packages.gz… [src:Sources.gz…]", filepath.Base(os.Args[0]))
	}
	i.binIndices, i.srcIndices = classifyArgs(flag.Args())

	configPath := filepath.Join(resolveTilde("~/.config/debpart"), "debpart.deb822")
	if err := i.readConfig(configPath); err != nil {
		log.Fatal(err)
	}
	if i.dest == "" {
		i.dest = "debian-media"
	}
	if i.pkgSize == "" {
		i.pkgSize = "cd74"
	}

	if err := i.run(); err != nil {
		log.Fatal(err)
	}
}
