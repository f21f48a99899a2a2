package vm

import "strings"

// Label is a variable-length bit-string key naming a jump or subroutine
// target, decoded from a tab/space sequence terminated by a newline (tab=1,
// space=0). Two Labels are equal iff their bit sequences are identical,
// including length: "0" and "00" are different labels even though both
// decode to the numeric value zero.
//
// bits holds one bit per byte (0 or 1) rather than a packed bitset. Whitespace
// labels are short in practice (they're typed by hand or generated by a
// compiler targeting human-sized programs) and keeping one bit per byte makes
// String trivial and avoids getting the packing order wrong, which the
// original C implementation's plain char* labels were vulnerable to: two
// different-length bit-strings sharing a prefix must never compare equal.
type Label struct {
	bits []byte
}

// key returns a canonical string encoding suitable for use as a Go map key.
// Each bit is written as one character ('0' or '1') and the key ends with a
// ':' terminator, so labels of different lengths can never collide, even
// when one is a prefix of the other.
func (l Label) key() string {
	var b strings.Builder
	b.Grow(len(l.bits) + 8)
	for _, bit := range l.bits {
		if bit != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteByte(':')
	return b.String()
}

// String renders the label as its raw bit pattern, tab-for-1 space-for-0,
// the same alphabet the source used to define it. Two different Labels never
// render to the same string.
func (l Label) String() string {
	b := make([]byte, len(l.bits))
	for i, bit := range l.bits {
		if bit != 0 {
			b[i] = 'T'
		} else {
			b[i] = 'S'
		}
	}
	return string(b)
}

// Len returns the number of bits in the label.
func (l Label) Len() int { return len(l.bits) }

// LabelTable maps label keys to the instruction ID of their LabelDefine.
// Keys are unique; defining the same label twice overwrites the earlier
// definition, per spec: a label defined inside a subroutine shadows an outer
// definition with the same key for the remainder of the program.
type LabelTable struct {
	m map[string]ID
}

// NewLabelTable returns an empty LabelTable.
func NewLabelTable() *LabelTable {
	return &LabelTable{m: make(map[string]ID)}
}

// Define registers label as resolving to id, overwriting any previous
// definition.
func (t *LabelTable) Define(label Label, id ID) {
	t.m[label.key()] = id
}

// Lookup returns the instruction ID defining label, and whether it was
// found.
func (t *LabelTable) Lookup(label Label) (ID, bool) {
	id, ok := t.m[label.key()]
	return id, ok
}
