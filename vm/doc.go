// Package vm implements the Whitespace virtual machine: a tokenizer/parser
// over the tab/space/newline alphabet, a linker that resolves labels and
// subroutine bodies, and an executor with a data stack and an integer-indexed
// heap.
//
// A run looks like:
//
//	buf := new(vm.Normalizer)
//	buf.Append(source)
//	prog, err := vm.Parse(buf.Finalize())
//	if err != nil {
//		// malformed program
//	}
//	if err := vm.Link(prog); err != nil {
//		// unresolved label or unmatched end-of-routine
//	}
//	i := vm.New(prog, vm.Input(os.Stdin), vm.Output(os.Stdout))
//	err = i.Run()
//
// For all intents and purposes the VM behaves according to the Whitespace
// language definition: tab, space and newline are significant, every other
// byte is a comment and is discarded before parsing ever sees it.
package vm
