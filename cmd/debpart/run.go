package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/Debian/debpart/internal/catalog"
	"github.com/Debian/debpart/internal/emit"
	"github.com/Debian/debpart/internal/humanbytes"
	"github.com/Debian/debpart/internal/partition"
)

func (i *invocation) run() error {
	pkgs := catalog.NewPackages()
	if err := pkgs.Load(i.binIndices...); err != nil {
		return err
	}
	i.V().Printf("cataloged %d binary packages (%s) from %d index document(s)",
		pkgs.Len(), humanbytes.Format(pkgs.Total()), len(i.binIndices))

	var srcs *catalog.Sources
	if len(i.srcIndices) > 0 {
		srcs = catalog.NewSources()
		srcs.Missing = func(binary string) {
			log.Printf("no source package found for %s", binary)
		}
		if err := srcs.Load(i.srcIndices...); err != nil {
			return err
		}
		i.V().Printf("cataloged %d source packages from %d index document(s)",
			srcs.Len(), len(i.srcIndices))
	}

	pkgCaps, err := partition.ParseCapacitySequence(i.pkgSize, log.Printf)
	if err != nil {
		return err
	}
	srcCaps := pkgCaps
	if i.srcSize != "" {
		if srcCaps, err = partition.ParseCapacitySequence(i.srcSize, log.Printf); err != nil {
			return err
		}
	}

	order, err := i.selectPackages(pkgs)
	if err != nil {
		return err
	}

	pt := &partition.Partitioner{
		Packages:        pkgs,
		Sources:         srcs,
		PkgCapacities:   pkgCaps,
		SrcCapacities:   srcCaps,
		Max:             i.maxPartitions,
		MergeSources:    i.mergeSources,
		IgnoreOversized: i.ignoreOversized,
		Warnf:           log.Printf,
	}
	res, err := pt.Run(order)
	if err != nil {
		return err
	}

	em := &emit.Emitter{Dest: i.dest, Labels: splitList(i.labels)}
	if err := em.Packages(res.Packages, pkgs); err != nil {
		return err
	}
	if srcs != nil {
		if err := em.Sources(res.Sources, srcs, i.mergeSources); err != nil {
			return err
		}
	}

	for idx, part := range res.Packages {
		fmt.Printf("%s: %d packages, %s\n",
			em.Label(idx), len(part.Names), humanbytes.Format(part.Size))
	}
	if srcs != nil && !i.mergeSources {
		for idx, part := range res.Sources {
			fmt.Printf("%s: %d sources, %s\n",
				em.SourceLabel(idx), len(part.Names), humanbytes.Format(part.Size))
		}
	}
	if len(res.Skipped) > 0 {
		log.Printf("skipped %d oversized item(s): %s",
			len(res.Skipped), strings.Join(res.Skipped, ", "))
	}
	if len(res.Truncated) > 0 {
		log.Printf("partition budget of %d reached, %d package(s) left out",
			i.maxPartitions, len(res.Truncated))
	}
	return nil
}
