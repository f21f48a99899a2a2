package disasm

import (
	"fmt"
	"io"

	"github.com/amu-kuroneko/whitespace/vm"
)

// Disassemble writes one line per instruction in prog to w, in textual
// program order (instruction 0 first), regardless of where control flow
// would actually visit them.
//
// Numbers are rendered as both zero-padded hex and signed decimal, the same
// pair the reference disassembler prints ("0x%08x( %d )"). Labels are
// rendered as their raw bit pattern (tab->T, space->S), which is stable and
// distinguishes labels that share a numeric value but differ in length.
func Disassemble(prog *vm.Program, w io.Writer) error {
	for id := range prog.Instructions {
		ins := prog.At(vm.ID(id))
		if _, err := fmt.Fprintf(w, "%-15s: %s", ins.IMP, vm.Mnemonic(ins.IMP, ins.Op)); err != nil {
			return err
		}
		switch {
		case ins.HasNumber():
			if _, err := fmt.Fprintf(w, ": 0x%08x( %d )", uint64(ins.Number), int64(ins.Number)); err != nil {
				return err
			}
		case ins.HasLabel():
			if _, err := fmt.Fprintf(w, ": %s", ins.Label); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
