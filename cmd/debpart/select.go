package main

import (
	"bufio"
	"log"
	"os"
	"strings"

	"github.com/Debian/debpart/internal/catalog"
)

// classifyArgs splits the positional index-document arguments into
// binary and source index documents by their bin:/src: prefix. Untagged
// arguments are binary indices.
func classifyArgs(args []string) (bin, src []string) {
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "src:"):
			src = append(src, strings.TrimPrefix(arg, "src:"))
		case strings.HasPrefix(arg, "bin:"):
			bin = append(bin, strings.TrimPrefix(arg, "bin:"))
		default:
			bin = append(bin, arg)
		}
	}
	return bin, src
}

// splitList splits a comma-separated flag value, dropping empty fields.
func splitList(s string) []string {
	var fields []string
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}

// selectPackages returns the ordered package list to partition: the
// explicit -packages list followed by the -packages_from file, or every
// cataloged package in catalog order when neither is given. Selected
// names missing from the catalog are reported but kept; they carry size
// zero.
func (i *invocation) selectPackages(pkgs *catalog.Packages) ([]string, error) {
	names := splitList(i.packages)
	if i.packagesFrom != "" {
		f, err := os.Open(i.packagesFrom)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			names = append(names, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	if len(names) == 0 {
		return pkgs.Names(), nil
	}
	for _, name := range names {
		if !pkgs.Has(name) {
			log.Printf("selected package %s is not in any parsed index", name)
		}
	}
	return names, nil
}
