package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func runProgram(t *testing.T, in string, parts ...string) (stdout string, err error) {
	t.Helper()
	prog := build(t, parts...)
	var out bytes.Buffer
	i := New(prog, Input(strings.NewReader(in)), Output(&out))
	err = i.Run()
	return out.String(), err
}

func TestExecutePrintAAndHalt(t *testing.T) {
	out, err := runProgram(t, "",
		pushNumber(65),
		putChar(),
		finish(),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "A" {
		t.Fatalf("output = %q, want %q", out, "A")
	}
}

func TestExecuteAddTwoNumbers(t *testing.T) {
	out, err := runProgram(t, "",
		pushNumber(3),
		pushNumber(4),
		addition(),
		putNumber(),
		finish(),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "7" {
		t.Fatalf("output = %q, want %q", out, "7")
	}
}

func TestExecuteHeapStoreThenLoad(t *testing.T) {
	out, err := runProgram(t, "",
		pushNumber(0),  // address
		pushNumber(42), // value
		toAddress(),
		pushNumber(0), // address
		toStack(),
		putNumber(),
		finish(),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "42" {
		t.Fatalf("output = %q, want %q", out, "42")
	}
}

func TestExecuteUnassignedHeapRead(t *testing.T) {
	_, err := runProgram(t, "",
		pushNumber(0),
		toStack(),
		finish(),
	)
	if errors.Cause(err) != ErrUnassignedHeap {
		t.Fatalf("Cause(err) = %v, want ErrUnassignedHeap", errors.Cause(err))
	}
}

func TestExecuteDivisionByZero(t *testing.T) {
	_, err := runProgram(t, "",
		pushNumber(5),
		pushNumber(0),
		division(),
		finish(),
	)
	if errors.Cause(err) != ErrDivisionByZero {
		t.Fatalf("Cause(err) = %v, want ErrDivisionByZero", errors.Cause(err))
	}
}

func TestExecuteStackUnderflow(t *testing.T) {
	_, err := runProgram(t, "", topDestruction())
	if errors.Cause(err) != ErrStackUnderflow {
		t.Fatalf("Cause(err) = %v, want ErrStackUnderflow", errors.Cause(err))
	}
}

func TestExecuteNSlideOutOfRange(t *testing.T) {
	_, err := runProgram(t, "",
		pushNumber(1),
		nSlide(5),
	)
	if errors.Cause(err) != ErrStackUnderflow {
		t.Fatalf("Cause(err) = %v, want ErrStackUnderflow", errors.Cause(err))
	}
}

func TestExecuteNCopyNegativeIsStackUnderflow(t *testing.T) {
	_, err := runProgram(t, "",
		pushNumber(1),
		nCopy(-1),
	)
	if errors.Cause(err) != ErrStackUnderflow {
		t.Fatalf("Cause(err) = %v, want ErrStackUnderflow", errors.Cause(err))
	}
}

// TestExecuteCountdownLoop exercises ZeroJump-driven looping: it counts down
// from 3, printing each nonzero value before decrementing, and halts once
// the counter reaches zero.
func TestExecuteCountdownLoop(t *testing.T) {
	loop := lbl(0)
	end := lbl(1, 1)
	out, err := runProgram(t, "",
		pushNumber(3),
		labelDefine(loop),
		topCopy(),
		zeroJump(end),
		topCopy(),
		putNumber(),
		pushNumber(1),
		subtraction(),
		jump(loop),
		labelDefine(end),
		topDestruction(),
		finish(),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "321" {
		t.Fatalf("output = %q, want %q", out, "321")
	}
}

// TestExecuteSubroutineCallAndReturn exercises CallRoutine's nested
// execution loop and its resumption at the call site's Next instruction
// once the callee reaches EndRoutine.
func TestExecuteSubroutineCallAndReturn(t *testing.T) {
	sub := lbl(0, 1)
	out, err := runProgram(t, "",
		callRoutine(sub),
		finish(),
		labelDefine(sub),
		pushNumber(65),
		putChar(),
		endRoutine(),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "A" {
		t.Fatalf("output = %q, want %q", out, "A")
	}
}

func TestExecuteGetCharStoresAtHeapAddress(t *testing.T) {
	out, err := runProgram(t, "Z",
		pushNumber(0), // address, left on stack for GetChar
		getChar(),
		pushNumber(0),
		toStack(),
		putChar(),
		finish(),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "Z" {
		t.Fatalf("output = %q, want %q", out, "Z")
	}
}

func TestExecuteGetCharAtEOFStoresSentinelAndIsNonFatal(t *testing.T) {
	out, err := runProgram(t, "", // empty input: immediately at EOF
		pushNumber(0),
		getChar(),
		pushNumber(0),
		toStack(),
		putNumber(),
		finish(),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "-1" {
		t.Fatalf("output = %q, want %q (the fgetc-at-EOF sentinel)", out, "-1")
	}
}

func TestExecuteGetNumberAtEOFIsNonFatal(t *testing.T) {
	_, err := runProgram(t, "", // empty input: immediately at EOF
		pushNumber(0),
		getNumber(),
		finish(),
	)
	if err != nil {
		t.Fatalf("Run: %v, want nil (EOF on GetNumber must be a no-op)", err)
	}
}

func TestExecuteGetCharPastEOFLeavesSentinelUntouched(t *testing.T) {
	out, err := runProgram(t, "A",
		pushNumber(0),
		getChar(), // reads 'A', heap[0] = 65
		getChar(), // crosses into EOF, heap[0] = -1
		getChar(), // already at EOF: no-op, heap[0] stays -1
		pushNumber(0),
		toStack(),
		putNumber(),
		finish(),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "-1" {
		t.Fatalf("output = %q, want %q", out, "-1")
	}
}

func TestInstructionCountAdvancesPerExecutedInstruction(t *testing.T) {
	prog := build(t, pushNumber(1), pushNumber(2), addition(), finish())
	i := New(prog)
	if err := i.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if i.InstructionCount() != 3 {
		t.Fatalf("InstructionCount() = %d, want 3", i.InstructionCount())
	}
}
