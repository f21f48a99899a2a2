package main

import (
	"io"

	"github.com/amu-kuroneko/whitespace/vm"
)

// chunkSize matches the original C implementation's BUFFER_SIZE: large
// enough that progress chatter on typical source files isn't absurdly
// chatty, small enough that a misbehaving file doesn't need to be held
// entirely in memory before the Normalizer sees any of it.
const chunkSize = 1024

// loadProgram reads r in fixed-size chunks, feeding each chunk through n
// incrementally (matching the original's repeated fread+setProgram calls
// rather than slurping the whole source at once), and returns the
// normalized program buffer. If onChunk is non-nil it is called once per
// chunk read, for progress chatter; it is never called for a zero-byte
// final read.
func loadProgram(r io.Reader, n *vm.Normalizer, onChunk func(chunkIndex int)) ([]byte, error) {
	buf := make([]byte, chunkSize)
	for chunkIndex := 0; ; chunkIndex++ {
		count, err := r.Read(buf)
		if count > 0 {
			n.Append(buf[:count])
			if onChunk != nil {
				onChunk(chunkIndex)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if count == 0 {
			break
		}
	}
	return n.Finalize(), nil
}
