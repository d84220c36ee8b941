package catalog

import (
	"compress/gzip"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const amd64Index = `Package: acl
Version: 2.2.53-4
Architecture: amd64
Size: 62644
Filename: pool/main/a/acl/acl_2.2.53-4_amd64.deb

Package: attr
Version: 1:2.4.48-5
Architecture: amd64
Size: 50312
Filename: pool/main/a/attr/attr_2.4.48-5_amd64.deb

Package: dictionaries-common
Version: 1.28.1
Architecture: all
Size: 240488
Filename: pool/main/d/dictionaries-common/dictionaries-common_1.28.1_all.deb
`

// The arm64 build references the same pool file for the arch-independent
// package, which must not be counted twice.
const arm64Index = `Package: acl
Version: 2.2.53-4
Architecture: arm64
Size: 61280
Filename: pool/main/a/acl/acl_2.2.53-4_arm64.deb

Package: dictionaries-common
Version: 1.28.1
Architecture: all
Size: 240488
Filename: pool/main/d/dictionaries-common/dictionaries-common_1.28.1_all.deb
`

func TestPackagesParse(t *testing.T) {
	t.Parallel()

	p := NewPackages()
	if err := p.Parse(strings.NewReader(amd64Index)); err != nil {
		t.Fatal(err)
	}

	if got, want := p.Len(), 3; got != want {
		t.Fatalf("unexpected package count: got %d, want %d", got, want)
	}
	if got, want := p.Size("acl"), int64(62644); got != want {
		t.Errorf("Size(acl) = %d, want %d", got, want)
	}
	if got, want := p.Size("no-such-package"), int64(0); got != want {
		t.Errorf("Size(no-such-package) = %d, want %d", got, want)
	}
	if got, want := p.SizeAll([]string{"acl", "attr", "no-such-package"}), int64(62644+50312); got != want {
		t.Errorf("SizeAll = %d, want %d", got, want)
	}
	if got, want := p.Names(), []string{"acl", "attr", "dictionaries-common"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestPackagesDedup(t *testing.T) {
	t.Parallel()

	p := NewPackages()
	for _, doc := range []string{amd64Index, arm64Index} {
		if err := p.Parse(strings.NewReader(doc)); err != nil {
			t.Fatal(err)
		}
	}

	// dictionaries-common's pool file appears in both documents but must
	// be counted once; the two acl builds are distinct files.
	want := int64(62644 + 50312 + 240488 + 61280)
	if got := p.Total(); got != want {
		t.Errorf("Total() = %d, want %d", got, want)
	}
}

func TestPackagesNewerVersionWins(t *testing.T) {
	t.Parallel()

	const updated = `Package: acl
Version: 2.2.53-5
Architecture: amd64
Size: 62700
Filename: pool/main/a/acl/acl_2.2.53-5_amd64.deb
`
	const stale = `Package: acl
Version: 2.2.53-4
Architecture: amd64
Size: 62644
Filename: pool/main/a/acl/acl_2.2.53-4_amd64.deb
`

	p := NewPackages()
	for _, doc := range []string{updated, stale} {
		if err := p.Parse(strings.NewReader(doc)); err != nil {
			t.Fatal(err)
		}
	}
	if got, want := p.Size("acl"), int64(62700); got != want {
		t.Errorf("Size(acl) = %d, want %d", got, want)
	}
	para, ok := p.Paragraph("acl")
	if !ok {
		t.Fatal("Paragraph(acl) unexpectedly not found")
	}
	if got, want := para.Values["Version"], "2.2.53-5"; got != want {
		t.Errorf("retained Version = %q, want %q", got, want)
	}
}

func TestPackagesLoad(t *testing.T) {
	t.Parallel()

	dir, err := ioutil.TempDir("", "debparttest")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	plain := filepath.Join(dir, "Packages")
	if err := ioutil.WriteFile(plain, []byte(amd64Index), 0644); err != nil {
		t.Fatal(err)
	}

	compressed := filepath.Join(dir, "Packages.gz")
	f, err := os.Create(compressed)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(arm64Index)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	p := NewPackages()
	if err := p.Load(plain, compressed); err != nil {
		t.Fatal(err)
	}
	if got, want := p.Total(), int64(62644+50312+240488+61280); got != want {
		t.Errorf("Total() = %d, want %d", got, want)
	}
}

func TestPackagesLoadMissing(t *testing.T) {
	t.Parallel()

	p := NewPackages()
	if err := p.Load("/nonexistent/Packages.gz"); err == nil {
		t.Fatal("Load of a nonexistent document unexpectedly succeeded")
	}
}
