// Package disasm renders a linked vm.Program as human-readable text, one
// line per instruction: "<category>: <mnemonic>[: <parameter>]". It is a
// read-only consumer of the instruction list; it has no control-flow effect,
// and the only error it can return is a failed write to its output.
package disasm
