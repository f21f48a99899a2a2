package vm

import "github.com/pkg/errors"

// Sentinel errors for the fatal conditions a Whitespace program can trigger.
// Use errors.Cause to compare against these after a wrapped error comes back
// from Parse, Link or Run.
var (
	// ErrMalformedProgram is returned when a byte violates the grammar at the
	// current decoding point, or the buffer ends mid-instruction.
	ErrMalformedProgram = errors.New("malformed program")

	// ErrUnmatchedEnd is returned when an end-of-routine marker has no
	// currently open label definition to close.
	ErrUnmatchedEnd = errors.New("end-of-routine with no open label")

	// ErrUnresolvedLabel is returned when a jump or call references a label
	// with no definition anywhere in the program.
	ErrUnresolvedLabel = errors.New("unresolved label")

	// ErrStackUnderflow is returned on pop/peek of an empty stack, or on
	// NCopy/NSlide with an out-of-range count.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrUnassignedHeap is returned when reading a heap address that was
	// never written.
	ErrUnassignedHeap = errors.New("read from unassigned heap address")

	// ErrDivisionByZero is returned by Division and Modulo when the divisor
	// is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrIllegalOpcode marks an internal invariant violation: a well-formed
	// instruction list should never produce this.
	ErrIllegalOpcode = errors.New("illegal opcode")

	// ErrIOFailure wraps a failure to open or read the program source.
	ErrIOFailure = errors.New("i/o failure")
)
