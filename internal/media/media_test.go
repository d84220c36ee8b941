package media

import "testing"

func TestCapacity(t *testing.T) {
	t.Parallel()

	// Expected values are the nominal capacity times the usable factor
	// of 0.93: e.g. cd74 is 74 min × 60 s × 75 blocks × 2048 bytes.
	for _, entry := range []struct {
		alias string
		want  int64
	}{
		{"cd74", 634245120},
		{"cd80", 685670400},
		{"cd90", 771379200},
		{"cd100", 857088000},
		{"dvd5", 4371000000},
		{"dvd9", 7942200000},
	} {
		got, ok := Capacity(entry.alias)
		if !ok {
			t.Fatalf("Capacity(%q): unexpectedly not found", entry.alias)
		}
		if got != entry.want {
			t.Errorf("Capacity(%q) = %d, want %d", entry.alias, got, entry.want)
		}
	}
}

func TestCapacityUnknown(t *testing.T) {
	t.Parallel()

	if got, ok := Capacity("cd999"); ok || got != 0 {
		t.Errorf("Capacity(%q) = %d, %v, want 0, false", "cd999", got, ok)
	}
}

func TestAliases(t *testing.T) {
	t.Parallel()

	aliases := Aliases()
	if got, want := len(aliases), 6; got != want {
		t.Fatalf("unexpected number of aliases: got %d, want %d", got, want)
	}
	for i := 1; i < len(aliases); i++ {
		if aliases[i-1] >= aliases[i] {
			t.Errorf("aliases not sorted: %q before %q", aliases[i-1], aliases[i])
		}
	}
}
