package write

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestAtomically(t *testing.T) {
	t.Parallel()

	dir, err := ioutil.TempDir("", "debparttest")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// The partition directory does not exist until the first write.
	dest := filepath.Join(dir, "1", "Packages.gz")
	if err := Atomically(dest, func(w io.Writer) error {
		_, err := io.WriteString(w, "Package: acl\n")
		return err
	}); err != nil {
		t.Fatal(err)
	}

	got, err := ioutil.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if want := "Package: acl\n"; string(got) != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestAtomicallyFailedWrite(t *testing.T) {
	t.Parallel()

	dir, err := ioutil.TempDir("", "debparttest")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	dest := filepath.Join(dir, "2", "Sources.gz")
	if err := Atomically(dest, func(w io.Writer) error {
		return fmt.Errorf("disk full")
	}); err == nil {
		t.Fatal("Atomically unexpectedly succeeded")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("failed write left %s behind (err: %v)", dest, err)
	}
}
