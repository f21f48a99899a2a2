package vm

// Tiny program assembler for tests: builds the three-character alphabet
// programmatically instead of hand-transcribing tab/space/newline literals,
// which are unreadable (and error-prone to review) in source form.

const (
	sp = " "
	tb = "\t"
	nl = "\n"
)

// numLit encodes n the way the parser's number() method decodes it: one
// sign byte, then the minimal big-endian bit pattern of its magnitude
// (empty for zero), terminated by newline.
func numLit(n int64) string {
	sign := sp
	mag := uint64(n)
	if n < 0 {
		sign = tb
		mag = uint64(-n)
	}
	var bits string
	started := false
	for i := 62; i >= 0; i-- {
		bit := (mag >> uint(i)) & 1
		if bit == 1 {
			started = true
		}
		if started {
			if bit == 1 {
				bits += tb
			} else {
				bits += sp
			}
		}
	}
	return sign + bits + nl
}

// lbl encodes a label from a sequence of bits (0 or 1).
func lbl(bits ...int) string {
	var s string
	for _, b := range bits {
		if b != 0 {
			s += tb
		} else {
			s += sp
		}
	}
	return s + nl
}

func pushNumber(n int64) string  { return sp + sp + numLit(n) }
func topCopy() string            { return sp + nl + sp }
func nCopy(n int64) string       { return sp + tb + sp + numLit(n) }
func pushExchange() string       { return sp + nl + tb }
func topDestruction() string     { return sp + nl + nl }
func nSlide(n int64) string      { return sp + tb + nl + numLit(n) }

func addition() string       { return tb + sp + sp + sp }
func subtraction() string    { return tb + sp + sp + tb }
func multiplication() string { return tb + sp + sp + nl }
func division() string       { return tb + sp + tb + sp }
func modulo() string         { return tb + sp + tb + tb }

func toAddress() string { return tb + tb + sp }
func toStack() string   { return tb + tb + tb }

func labelDefine(l string) string { return nl + sp + sp + l }
func callRoutine(l string) string { return nl + sp + tb + l }
func jump(l string) string        { return nl + sp + nl + l }
func zeroJump(l string) string    { return nl + tb + sp + l }
func minusJump(l string) string   { return nl + tb + tb + l }
func endRoutine() string          { return nl + tb + nl }
func finish() string              { return nl + nl + nl }

func putChar() string   { return tb + nl + sp + sp }
func putNumber() string { return tb + nl + sp + tb }
func getChar() string   { return tb + nl + tb + sp }
func getNumber() string { return tb + nl + tb + tb }

// asm concatenates instruction fragments into a program buffer.
func asm(parts ...string) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

// build parses and links a program built from asm, failing the test on
// error.
func build(t interface{ Fatalf(string, ...interface{}) }, parts ...string) *Program {
	prog, err := Parse(asm(parts...))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := Link(prog); err != nil {
		t.Fatalf("link: %v", err)
	}
	return prog
}
