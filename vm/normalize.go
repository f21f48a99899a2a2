package vm

// Normalizer accumulates incoming bytes and retains only the three
// significant Whitespace characters: tab, space and newline. Everything else
// is a comment and is silently discarded. This lets the Parser stay a simple
// prefix decoder with no interleaved comment handling.
//
// A Normalizer can be fed incrementally (Append may be called once per chunk
// read from a file or socket) and is safe to reuse across programs via
// Clear.
type Normalizer struct {
	buf []byte
}

// Append filters b and appends any tab/space/newline bytes it contains to
// the accumulated buffer. Calling Append multiple times with successive
// chunks of a source is equivalent to calling it once with the
// concatenation of those chunks: non-significant bytes are comments and
// dropping them piecewise or all at once yields the same program.
func (n *Normalizer) Append(b []byte) {
	for _, c := range b {
		switch c {
		case '\t', ' ', '\n':
			n.buf = append(n.buf, c)
		}
	}
}

// Finalize returns the accumulated significant characters as the normalized
// program buffer, ready for Parse. The Normalizer retains its state; call
// Clear first if you intend to reuse it for a new program.
func (n *Normalizer) Finalize() []byte {
	return n.buf
}

// Clear discards all accumulated state.
func (n *Normalizer) Clear() {
	n.buf = n.buf[:0]
}
