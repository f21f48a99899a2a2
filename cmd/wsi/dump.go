package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/amu-kuroneko/whitespace/vm"
)

// dumpStack writes the data stack, bottom to top, space separated, for the
// -dump diagnostic flag.
func dumpStack(w io.Writer, stack []vm.Cell) error {
	var b strings.Builder
	l := len(stack) - 1
	for i := 0; i < l; i++ {
		b.WriteString(strconv.FormatInt(int64(stack[i]), 10))
		b.WriteByte(' ')
	}
	if l >= 0 {
		b.WriteString(strconv.FormatInt(int64(stack[l]), 10))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
