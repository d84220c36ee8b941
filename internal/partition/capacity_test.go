package partition

import (
	"reflect"
	"testing"
)

func discardf(format string, args ...interface{}) {}

func TestParseCapacitySequence(t *testing.T) {
	t.Parallel()

	for _, entry := range []struct {
		input string
		want  CapacitySequence
	}{
		{"cd74", CapacitySequence{634245120}},
		{"650M,cd74", CapacitySequence{650 * 1024 * 1024, 634245120}},
		{"4700000000", CapacitySequence{4700000000}},
		{"dvd5, dvd9", CapacitySequence{4371000000, 7942200000}},
	} {
		got, err := ParseCapacitySequence(entry.input, discardf)
		if err != nil {
			t.Fatalf("ParseCapacitySequence(%q): %v", entry.input, err)
		}
		if !reflect.DeepEqual(got, entry.want) {
			t.Errorf("ParseCapacitySequence(%q) = %v, want %v", entry.input, got, entry.want)
		}
	}
}

func TestParseCapacitySequenceUnknownAlias(t *testing.T) {
	t.Parallel()

	var warnings int
	seq, err := ParseCapacitySequence("cd999", func(format string, args ...interface{}) {
		warnings++
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := seq, (CapacitySequence{0}); !reflect.DeepEqual(got, want) {
		t.Errorf("sequence = %v, want %v", got, want)
	}
	if got, want := warnings, 1; got != want {
		t.Errorf("warnings = %d, want %d", got, want)
	}
}

func TestParseCapacitySequenceInvalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"6x50", "", ","} {
		if _, err := ParseCapacitySequence(input, discardf); err == nil {
			t.Errorf("ParseCapacitySequence(%q) unexpectedly succeeded", input)
		}
	}
}

func TestCapacityCarryForward(t *testing.T) {
	t.Parallel()

	seq := CapacitySequence{100, 50}
	for _, entry := range []struct {
		index int
		want  int64
	}{
		{0, 100},
		{1, 50},
		{2, 50},
		{17, 50},
	} {
		if got := seq.At(entry.index); got != entry.want {
			t.Errorf("At(%d) = %d, want %d", entry.index, got, entry.want)
		}
	}

	if got, want := CapacitySequence(nil).At(3), int64(0); got != want {
		t.Errorf("empty sequence At(3) = %d, want %d", got, want)
	}
}
