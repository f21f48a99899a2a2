// Command wscolor reads a Whitespace source from standard input and
// rewrites it to standard output with tabs and spaces highlighted in VT100
// background colors and spelled out as T/S, so the program's control
// structure is visible in a terminal. Bytes outside the tab/space/newline
// alphabet pass through unchanged.
package main

import (
	"bufio"
	"io"
	"os"
)

const (
	tabColor     = "\x1b[43m"
	spaceColor   = "\x1b[46m"
	defaultColor = "\x1b[0m"
)

type highlight int

const (
	none highlight = iota
	tab
	space
)

func colorize(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	prev := none
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch c {
		case '\t':
			if prev != tab {
				io.WriteString(bw, tabColor)
				prev = tab
			}
			c = 'T'
		case ' ':
			if prev != space {
				io.WriteString(bw, spaceColor)
				prev = space
			}
			c = 'S'
		default:
			if prev != none {
				io.WriteString(bw, defaultColor)
				prev = none
			}
		}
		bw.WriteByte(c)
	}
	io.WriteString(bw, defaultColor)
	return nil
}

func main() {
	if err := colorize(os.Stdin, os.Stdout); err != nil {
		os.Exit(1)
	}
}
