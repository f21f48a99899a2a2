package vm

import "github.com/pkg/errors"

// Parse decodes a normalized program buffer (as returned by
// Normalizer.Finalize) into a linear Program. It does not resolve labels or
// pair subroutines with their end markers; call Link for that.
//
// Parse fails with ErrMalformedProgram on any byte that violates the
// grammar at the current decoding point, and on end-of-buffer mid-
// instruction. There is no recovery: the first malformed token aborts
// parsing.
func Parse(buf []byte) (*Program, error) {
	p := &parser{buf: buf}
	var out []Instruction
	for p.pos < len(p.buf) {
		ins, err := p.instruction()
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
	}
	for i := range out {
		if i == len(out)-1 {
			out[i].Next = NoID
		} else {
			out[i].Next = ID(i + 1)
		}
		out[i].Jump = NoID
	}
	return &Program{Instructions: out, Labels: NewLabelTable()}, nil
}

type parser struct {
	buf []byte
	pos int
}

// byte returns the next significant byte and advances the cursor. ok is
// false at end of buffer.
func (p *parser) byte() (c byte, ok bool) {
	if p.pos >= len(p.buf) {
		return 0, false
	}
	c = p.buf[p.pos]
	p.pos++
	return c, true
}

func (p *parser) instruction() (Instruction, error) {
	var ins Instruction
	imp, err := p.imp()
	if err != nil {
		return ins, err
	}
	ins.IMP = imp
	op, err := p.command(imp)
	if err != nil {
		return ins, err
	}
	ins.Op = op
	if hasNumber(imp, op) {
		n, err := p.number()
		if err != nil {
			return ins, err
		}
		ins.Number = n
	} else if hasLabel(imp, op) {
		l, err := p.label()
		if err != nil {
			return ins, err
		}
		ins.Label = l
	}
	return ins, nil
}

func (p *parser) imp() (IMP, error) {
	c, ok := p.byte()
	if !ok {
		return 0, errors.Wrap(ErrMalformedProgram, "unexpected end of program reading IMP")
	}
	switch c {
	case ' ':
		return Stack, nil
	case '\n':
		return FlowControl, nil
	case '\t':
		c, ok := p.byte()
		if !ok {
			return 0, errors.Wrap(ErrMalformedProgram, "unexpected end of program reading IMP")
		}
		switch c {
		case ' ':
			return Operation, nil
		case '\t':
			return Heap, nil
		case '\n':
			return IO, nil
		}
	}
	return 0, errors.Wrapf(ErrMalformedProgram, "illegal IMP prefix at offset %d", p.pos-1)
}

func (p *parser) command(imp IMP) (Opcode, error) {
	switch imp {
	case Stack:
		return p.stackCommand()
	case Operation:
		return p.operationCommand()
	case Heap:
		return p.heapCommand()
	case FlowControl:
		return p.flowControlCommand()
	case IO:
		return p.ioCommand()
	}
	return 0, errors.Wrap(ErrIllegalOpcode, "unknown IMP")
}

func (p *parser) want(table map[byte]Opcode) (Opcode, error) {
	c, ok := p.byte()
	if !ok {
		return 0, errors.Wrap(ErrMalformedProgram, "unexpected end of program reading command")
	}
	if op, ok := table[c]; ok {
		return op, nil
	}
	return 0, errors.Wrapf(ErrMalformedProgram, "illegal command byte at offset %d", p.pos-1)
}

func (p *parser) stackCommand() (Opcode, error) {
	c, ok := p.byte()
	if !ok {
		return 0, errors.Wrap(ErrMalformedProgram, "unexpected end of program reading stack command")
	}
	switch c {
	case ' ':
		return PushNumber, nil
	case '\t':
		return p.want(map[byte]Opcode{' ': NCopy, '\n': NSlide})
	case '\n':
		return p.want(map[byte]Opcode{' ': TopCopy, '\t': PushExchange, '\n': TopDestruction})
	}
	return 0, errors.Wrapf(ErrMalformedProgram, "illegal stack command at offset %d", p.pos-1)
}

func (p *parser) operationCommand() (Opcode, error) {
	c, ok := p.byte()
	if !ok {
		return 0, errors.Wrap(ErrMalformedProgram, "unexpected end of program reading operation command")
	}
	switch c {
	case ' ':
		return p.want(map[byte]Opcode{' ': Addition, '\t': Subtraction, '\n': Multiplication})
	case '\t':
		return p.want(map[byte]Opcode{' ': Division, '\t': Modulo})
	}
	return 0, errors.Wrapf(ErrMalformedProgram, "illegal operation command at offset %d", p.pos-1)
}

func (p *parser) heapCommand() (Opcode, error) {
	c, ok := p.byte()
	if !ok {
		return 0, errors.Wrap(ErrMalformedProgram, "unexpected end of program reading heap command")
	}
	switch c {
	case ' ':
		return ToAddress, nil
	case '\t':
		return ToStack, nil
	}
	return 0, errors.Wrapf(ErrMalformedProgram, "illegal heap command at offset %d", p.pos-1)
}

func (p *parser) flowControlCommand() (Opcode, error) {
	c, ok := p.byte()
	if !ok {
		return 0, errors.Wrap(ErrMalformedProgram, "unexpected end of program reading flow control command")
	}
	switch c {
	case ' ':
		return p.want(map[byte]Opcode{' ': LabelDefine, '\t': CallRoutine, '\n': Jump})
	case '\t':
		return p.want(map[byte]Opcode{' ': ZeroJump, '\t': MinusJump, '\n': EndRoutine})
	case '\n':
		c, ok := p.byte()
		if ok && c == '\n' {
			return Finish, nil
		}
		return 0, errors.Wrapf(ErrMalformedProgram, "illegal flow control command at offset %d", p.pos-1)
	}
	return 0, errors.Wrapf(ErrMalformedProgram, "illegal flow control command at offset %d", p.pos-1)
}

func (p *parser) ioCommand() (Opcode, error) {
	c, ok := p.byte()
	if !ok {
		return 0, errors.Wrap(ErrMalformedProgram, "unexpected end of program reading io command")
	}
	switch c {
	case ' ':
		return p.want(map[byte]Opcode{' ': PutChar, '\t': PutNumber})
	case '\t':
		return p.want(map[byte]Opcode{' ': GetChar, '\t': GetNumber})
	}
	return 0, errors.Wrapf(ErrMalformedProgram, "illegal io command at offset %d", p.pos-1)
}

// number decodes a sign byte (space=+, tab=-) followed by zero or more bits
// (space=0, tab=1), terminated by newline. The empty bit-string decodes to
// 0. Magnitude is masked to the low 63 bits before the sign is applied, and
// arithmetic on the resulting Cell treats -0 the same as 0 (it's stored as
// plain int64, which has no separate negative-zero representation).
func (p *parser) number() (Cell, error) {
	sign, ok := p.byte()
	if !ok {
		return 0, errors.Wrap(ErrMalformedProgram, "unexpected end of program reading number sign")
	}
	var negative bool
	switch sign {
	case ' ':
	case '\t':
		negative = true
	default:
		return 0, errors.Wrapf(ErrMalformedProgram, "illegal number sign at offset %d", p.pos-1)
	}
	var mag int64
	for {
		c, ok := p.byte()
		if !ok {
			return 0, errors.Wrap(ErrMalformedProgram, "unexpected end of program reading number")
		}
		switch c {
		case ' ':
			mag <<= 1
		case '\t':
			mag = mag<<1 | 1
		case '\n':
			mag &= 0x7FFFFFFFFFFFFFFF
			if negative {
				mag = -mag
			}
			return Cell(mag), nil
		default:
			return 0, errors.Wrapf(ErrMalformedProgram, "illegal number digit at offset %d", p.pos-1)
		}
	}
}

// label decodes a bit-string (space=0, tab=1) terminated by newline.
func (p *parser) label() (Label, error) {
	var bits []byte
	for {
		c, ok := p.byte()
		if !ok {
			return Label{}, errors.Wrap(ErrMalformedProgram, "unexpected end of program reading label")
		}
		switch c {
		case ' ':
			bits = append(bits, 0)
		case '\t':
			bits = append(bits, 1)
		case '\n':
			return Label{bits: bits}, nil
		default:
			return Label{}, errors.Wrapf(ErrMalformedProgram, "illegal label digit at offset %d", p.pos-1)
		}
	}
}
