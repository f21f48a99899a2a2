package main

import (
	"bytes"
	"testing"

	"github.com/amu-kuroneko/whitespace/vm"
)

func TestDumpStackSpaceSeparated(t *testing.T) {
	var buf bytes.Buffer
	if err := dumpStack(&buf, []vm.Cell{1, 2, 3}); err != nil {
		t.Fatalf("dumpStack: %v", err)
	}
	if got, want := buf.String(), "1 2 3"; got != want {
		t.Fatalf("dumpStack output = %q, want %q", got, want)
	}
}

func TestDumpStackEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := dumpStack(&buf, nil); err != nil {
		t.Fatalf("dumpStack: %v", err)
	}
	if got := buf.String(); got != "" {
		t.Fatalf("dumpStack output = %q, want empty", got)
	}
}
