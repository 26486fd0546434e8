package htbitset

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
)

// RawEncoder writes the bit set's words directly.
type RawEncoder struct {
	buf []byte
}

func (e *RawEncoder) encode(bs *bitset.BitSet, adaptive bool) {
	words := bs.Words()
	nBytes := 8 * len(words)
	if adaptive {
		nBytes++
	}

	if cap(e.buf) < nBytes {
		e.buf = make([]byte, nBytes)
	} else {
		e.buf = e.buf[:nBytes]
	}

	buf := e.buf
	if adaptive {
		buf[0] = rawEncoding
		buf = buf[1:]
	}

	putWords(buf, words)
}

func (e *RawEncoder) WriteBitset(w io.Writer, bs *bitset.BitSet) error {
	e.encode(bs, false)
	return e.write(w)
}

func (e *RawEncoder) write(w io.Writer) error {
	if _, err := w.Write(e.buf); err != nil {
		return fmt.Errorf("failed to write raw bitset: %w", err)
	}
	return nil
}

// RawDecoder reads bit sets written by [*RawEncoder].
type RawDecoder struct {
	buf []byte
}

func (d *RawDecoder) ReadBitset(r io.Reader, bs *bitset.BitSet) error {
	words := bs.Words()
	nBytes := len(words) * 8
	if cap(d.buf) < nBytes {
		d.buf = make([]byte, nBytes)
	} else {
		d.buf = d.buf[:nBytes]
	}

	if _, err := io.ReadFull(r, d.buf); err != nil {
		return fmt.Errorf("failed to read raw bitset data: %w", err)
	}

	getWords(words, d.buf)
	return nil
}

// putWords and getWords use little endian,
// since it is more likely to match a modern machine's endianness.

func putWords(dst []byte, words []uint64) {
	for i, w := range words {
		binary.LittleEndian.PutUint64(dst[i*8:], w)
	}
}

func getWords(dst []uint64, src []byte) {
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint64(src[i*8:])
	}
}
