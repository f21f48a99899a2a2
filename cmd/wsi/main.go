// Command wsi is a Whitespace interpreter: it reads a program from standard
// input, or from a file given with -f, parses and links it, and executes
// it against standard input/output.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/amu-kuroneko/whitespace/disasm"
	"github.com/amu-kuroneko/whitespace/vm"
	"github.com/pkg/errors"
)

var (
	fileName string
	asmOnly  bool
	verbose  bool
	dump     bool
)

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if i != nil {
		fmt.Fprintf(os.Stderr, "%v (at instruction %d, %d executed)\n", err, i.PC(), i.InstructionCount())
	} else {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(1)
}

func main() {
	fs := flagSet()
	fs.Parse(os.Args[1:])

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	var src *os.File = os.Stdin
	fromFile := fileName != ""
	if fromFile {
		f, err := os.Open(fileName)
		if err != nil {
			atExit(nil, errors.Wrapf(vm.ErrIOFailure, "open %s: %v", fileName, err))
		}
		defer f.Close()
		src = f
		fmt.Fprint(stdout, "source loading")
	}

	chatter := fromFile || verbose

	n := new(vm.Normalizer)
	onChunk := func(idx int) {
		if fromFile && idx%10 == 0 {
			fmt.Fprint(stdout, ".")
			stdout.Flush()
		}
	}
	buf, err := loadProgram(src, n, onChunk)
	if fromFile {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "load finished")
	}
	if err != nil {
		atExit(nil, errors.Wrapf(vm.ErrIOFailure, "read source: %v", err))
	}

	if chatter {
		fmt.Fprintln(stdout, "initialize instruction")
	}
	prog, err := vm.Parse(buf)
	if err != nil {
		atExit(nil, errors.Wrap(err, "parse"))
	}
	if err := vm.Link(prog); err != nil {
		atExit(nil, errors.Wrap(err, "link"))
	}

	if chatter || asmOnly {
		fmt.Fprintln(stdout, "initialize finished")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "disassemble start")
		line(stdout, 30)
		disasm.Disassemble(prog, stdout)
		line(stdout, 30)
		fmt.Fprintln(stdout, "disassemble finished")
		fmt.Fprintln(stdout)
	}

	if asmOnly {
		return
	}

	if chatter {
		fmt.Fprintln(stdout, "program start")
		line(stdout, 30)
	}

	i := vm.New(prog, vm.Input(os.Stdin), vm.Output(stdout))
	err = i.Run()

	if chatter {
		stdout.Flush()
		line(stdout, 30)
		fmt.Fprintln(stdout, "program finish")
		fmt.Fprintln(stdout, "end process")
		fmt.Fprintln(stdout, "all finished")
	}

	if dump {
		stdout.Flush()
		dumpStack(os.Stderr, i.Stack())
		fmt.Fprintln(os.Stderr)
	}

	if err != nil {
		atExit(i, err)
	}
}

func line(w *bufio.Writer, length int) {
	for n := 0; n < length; n++ {
		w.WriteByte('-')
	}
	w.WriteByte('\n')
}
