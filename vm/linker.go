package vm

import "github.com/pkg/errors"

// Link makes two forward passes over the program. The first registers every
// LabelDefine in the program's Label table and pairs each LabelDefine with
// its closing EndRoutine via a LIFO stack of currently-open definitions. The
// second resolves every CallRoutine/Jump/ZeroJump/MinusJump to its target
// instruction, so forward references resolve as well as backward ones.
//
// Unlike the reference implementation, which only discovers a missing label
// when execution reaches the unresolved jump, Link resolves eagerly: it
// returns ErrUnresolvedLabel for the first reference in the second pass that
// has no definition. spec.md explicitly allows either behavior; eager
// resolution is simpler to reason about and test.
func Link(p *Program) error {
	var open []ID // stack of currently-open LabelDefine ids

	for id := range p.Instructions {
		ins := &p.Instructions[id]
		if ins.IMP != FlowControl {
			continue
		}
		switch ins.Op {
		case LabelDefine:
			p.Labels.Define(ins.Label, ID(id))
			open = append(open, ID(id))
		case EndRoutine:
			if len(open) == 0 {
				return errors.Wrapf(ErrUnmatchedEnd, "end-of-routine at instruction %d has no open label", id)
			}
			last := len(open) - 1
			def := open[last]
			open = open[:last]
			p.At(def).Jump = ID(id)
		}
	}

	for id := range p.Instructions {
		ins := &p.Instructions[id]
		if ins.IMP != FlowControl {
			continue
		}
		switch ins.Op {
		case CallRoutine, Jump, ZeroJump, MinusJump:
			target, ok := p.Labels.Lookup(ins.Label)
			if !ok {
				return errors.Wrapf(ErrUnresolvedLabel, "no definition for label %q referenced at instruction %d", ins.Label, id)
			}
			ins.Jump = target
		}
	}
	return nil
}
