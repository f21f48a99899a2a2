package vm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Option configures an Instance at construction time, following the same
// functional-options shape as the Instance it configures.
type Option func(*Instance)

// Input sets the reader GetChar/GetNumber consume. Defaults to an empty
// reader if never set, so a program that never calls them still runs.
func Input(r io.Reader) Option {
	return func(i *Instance) { i.input = bufio.NewReader(r) }
}

// Output sets the writer PutChar/PutNumber write to. Defaults to io.Discard
// if never set.
func Output(w io.Writer) Option {
	return func(i *Instance) { i.output = w }
}

// Instance is a running (or runnable) Whitespace VM: a data stack, a
// sparse integer-addressed heap, and a cursor into a linked Program.
type Instance struct {
	prog *Program
	pc   ID

	stack []Cell
	heap  map[Cell]Cell

	input    *bufio.Reader
	output   io.Writer
	inputEOF bool

	insCount int64
}

// New creates an Instance ready to run prog from its first instruction.
// prog must already have been linked with Link.
func New(prog *Program, opts ...Option) *Instance {
	i := &Instance{
		prog: prog,
		pc:   0,
		heap: make(map[Cell]Cell),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.input == nil {
		i.input = bufio.NewReader(strings.NewReader(""))
	}
	if i.output == nil {
		i.output = io.Discard
	}
	return i
}

// PC returns the instruction ID the executor was at when it last stopped or
// faulted, for diagnostics.
func (i *Instance) PC() ID { return i.pc }

// InstructionCount returns the number of instructions executed so far. The
// Finish that halts the program and the EndRoutine that ends a subroutine
// call are not counted.
func (i *Instance) InstructionCount() int64 { return i.insCount }

// Stack returns the data stack, top last. Callers must not retain the slice
// across further calls to Run.
func (i *Instance) Stack() []Cell { return i.stack }

// Run executes the program starting at its first instruction until the
// cursor runs off the end of the program or a Finish instruction executes.
// All fatal conditions (stack underflow, division by zero, reads of
// unassigned heap, unresolved opcodes) are returned as an error with
// diagnostic context; there is no recovery.
func (i *Instance) Run() error {
	i.pc = 0
	_, err := i.run(i.isTopLevelStop)
	return err
}

func (i *Instance) isTopLevelStop(id ID) bool { return id == NoID }

func (i *Instance) isEndRoutine(id ID) bool {
	if id == NoID {
		return true
	}
	ins := i.prog.At(id)
	return ins.IMP == FlowControl && ins.Op == EndRoutine
}

// run executes instructions starting at i.pc until stop reports true for the
// current cursor, or a Finish instruction executes (in which case halted is
// true and the caller must unwind without resuming its own loop), or an
// error occurs.
func (i *Instance) run(stop func(ID) bool) (halted bool, err error) {
	for !stop(i.pc) {
		ins := i.prog.At(i.pc)
		switch ins.IMP {
		case Stack:
			err = i.execStack(ins)
		case Operation:
			err = i.execOperation(ins)
		case Heap:
			err = i.execHeap(ins)
		case IO:
			err = i.execIO(ins)
		case FlowControl:
			halted, err = i.execFlowControl(ins)
		default:
			err = errors.Wrapf(ErrIllegalOpcode, "instruction %d has unknown imp %v", i.pc, ins.IMP)
		}
		if err != nil {
			return false, errors.Wrapf(err, "at instruction %d (%v)", i.pc, ins.IMP)
		}
		if halted {
			return true, nil
		}
		i.insCount++
	}
	return false, nil
}

// --- stack helpers ---

func (i *Instance) push(v Cell) { i.stack = append(i.stack, v) }

func (i *Instance) pop() (Cell, error) {
	v, err := i.peek(0)
	if err != nil {
		return 0, err
	}
	i.stack = i.stack[:len(i.stack)-1]
	return v, nil
}

// peek returns the value at position n counting the top as position 0. n
// must be non-negative: NCopy decodes it straight from a program-supplied
// Number, which the parser accepts negative just as readily as positive, so
// this rejects it the same way an overlarge n is rejected rather than
// indexing the stack slice with it.
func (i *Instance) peek(n int) (Cell, error) {
	if n < 0 {
		return 0, ErrStackUnderflow
	}
	idx := len(i.stack) - 1 - n
	if idx < 0 {
		return 0, ErrStackUnderflow
	}
	return i.stack[idx], nil
}

func (i *Instance) execStack(ins *Instruction) error {
	switch ins.Op {
	case PushNumber:
		i.push(ins.Number)
	case TopCopy:
		v, err := i.peek(0)
		if err != nil {
			return err
		}
		i.push(v)
	case NCopy:
		v, err := i.peek(int(ins.Number))
		if err != nil {
			return err
		}
		i.push(v)
	case PushExchange:
		a, err := i.pop()
		if err != nil {
			return err
		}
		b, err := i.pop()
		if err != nil {
			return err
		}
		i.push(a)
		i.push(b)
	case TopDestruction:
		_, err := i.pop()
		if err != nil {
			return err
		}
	case NSlide:
		n := int(ins.Number)
		top, err := i.pop()
		if err != nil {
			return err
		}
		if n < 0 || n > len(i.stack) {
			return ErrStackUnderflow
		}
		i.stack = i.stack[:len(i.stack)-n]
		i.push(top)
	default:
		return errors.Wrapf(ErrIllegalOpcode, "unknown stack opcode %d", ins.Op)
	}
	i.advance(ins)
	return nil
}

func (i *Instance) execOperation(ins *Instruction) error {
	r, err := i.pop()
	if err != nil {
		return err
	}
	l, err := i.pop()
	if err != nil {
		return err
	}
	switch ins.Op {
	case Addition:
		i.push(l + r)
	case Subtraction:
		i.push(l - r)
	case Multiplication:
		i.push(l * r)
	case Division:
		if r == 0 {
			return ErrDivisionByZero
		}
		i.push(l / r)
	case Modulo:
		if r == 0 {
			return ErrDivisionByZero
		}
		i.push(l % r)
	default:
		return errors.Wrapf(ErrIllegalOpcode, "unknown operation opcode %d", ins.Op)
	}
	i.advance(ins)
	return nil
}

func (i *Instance) execHeap(ins *Instruction) error {
	switch ins.Op {
	case ToAddress:
		v, err := i.pop()
		if err != nil {
			return err
		}
		addr, err := i.pop()
		if err != nil {
			return err
		}
		i.heap[addr] = v
	case ToStack:
		addr, err := i.pop()
		if err != nil {
			return err
		}
		v, ok := i.heap[addr]
		if !ok {
			return errors.Wrapf(ErrUnassignedHeap, "address %d", addr)
		}
		i.push(v)
	default:
		return errors.Wrapf(ErrIllegalOpcode, "unknown heap opcode %d", ins.Op)
	}
	i.advance(ins)
	return nil
}

func (i *Instance) execIO(ins *Instruction) error {
	switch ins.Op {
	case PutChar:
		v, err := i.pop()
		if err != nil {
			return err
		}
		if _, err := i.output.Write([]byte{byte(v & 0xFF)}); err != nil {
			return errors.Wrap(err, "put char")
		}
		if f, ok := i.output.(interface{ Flush() error }); ok {
			if err := f.Flush(); err != nil {
				return errors.Wrap(err, "flush")
			}
		}
	case PutNumber:
		v, err := i.pop()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(i.output, "%d", int64(v)); err != nil {
			return errors.Wrap(err, "put number")
		}
		if f, ok := i.output.(interface{ Flush() error }); ok {
			if err := f.Flush(); err != nil {
				return errors.Wrap(err, "flush")
			}
		}
	case GetChar:
		if i.inputEOF {
			break
		}
		addr, err := i.peek(0)
		if err != nil {
			return err
		}
		b, err := i.input.ReadByte()
		if err == io.EOF {
			// Matches the reference fgetc(stdin) at end of file: the read
			// that first crosses into EOF still stores its sentinel value;
			// every GetChar/GetNumber after that is a no-op.
			i.inputEOF = true
			i.heap[addr] = -1
			break
		}
		if err != nil {
			return errors.Wrap(err, "get char")
		}
		i.heap[addr] = Cell(b)
	case GetNumber:
		if i.inputEOF {
			break
		}
		addr, err := i.peek(0)
		if err != nil {
			return err
		}
		line, err := i.input.ReadString('\n')
		if err == io.EOF {
			i.inputEOF = true
			if line == "" {
				break
			}
		} else if err != nil {
			return errors.Wrap(err, "get number")
		}
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			return errors.Wrap(err, "get number: malformed integer")
		}
		i.heap[addr] = Cell(n)
	default:
		return errors.Wrapf(ErrIllegalOpcode, "unknown io opcode %d", ins.Op)
	}
	i.advance(ins)
	return nil
}

// execFlowControl dispatches a flow-control instruction. halted is true only
// when a Finish instruction executed, at any call depth; the caller (Run, or
// an enclosing CallRoutine's nested loop) must stop without resuming.
func (i *Instance) execFlowControl(ins *Instruction) (halted bool, err error) {
	switch ins.Op {
	case LabelDefine:
		i.pc = ins.Next
	case CallRoutine:
		if ins.Jump == NoID {
			return false, errors.Wrap(ErrIllegalOpcode, "call to unresolved label")
		}
		i.pc = ins.Jump
		h, err := i.run(i.isEndRoutine)
		if err != nil {
			return false, err
		}
		if h {
			return true, nil
		}
		i.pc = ins.Next
	case Jump:
		i.pc = ins.Jump
	case ZeroJump:
		v, err := i.pop()
		if err != nil {
			return false, err
		}
		if v == 0 {
			i.pc = ins.Jump
		} else {
			i.pc = ins.Next
		}
	case MinusJump:
		v, err := i.pop()
		if err != nil {
			return false, err
		}
		if v < 0 {
			i.pc = ins.Jump
		} else {
			i.pc = ins.Next
		}
	case EndRoutine:
		i.pc = ins.Next
	case Finish:
		return true, nil
	default:
		return false, errors.Wrapf(ErrIllegalOpcode, "unknown flow control opcode %d", ins.Op)
	}
	return false, nil
}

func (i *Instance) advance(ins *Instruction) { i.pc = ins.Next }
