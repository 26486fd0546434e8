package htbitset

import (
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
)

const (
	rawEncoding    byte = 0
	snappyEncoding byte = 1
)

// AdaptiveEncoder writes a one-byte header followed by
// whichever of the raw or snappy encodings is smaller.
type AdaptiveEncoder struct {
	se SnappyEncoder
}

func (e *AdaptiveEncoder) WriteBitset(w io.Writer, bs *bitset.BitSet) error {
	e.se.encode(bs, true)

	// The reader knows the size of the bitset up front,
	// so raw bytes carry no size overhead,
	// whereas snappy carries its length prefix.
	if len(e.se.wordBuf) <= len(e.se.encBuf) {
		// The wordBuf from the adaptive snappy encoding
		// already has the raw header byte.
		re := RawEncoder{buf: e.se.wordBuf}
		return re.write(w)
	}

	return e.se.write(w)
}

// AdaptiveDecoder reads bit sets written by [*AdaptiveEncoder].
type AdaptiveDecoder struct {
	sd SnappyDecoder
	rd RawDecoder
}

func (d *AdaptiveDecoder) ReadBitset(r io.Reader, bs *bitset.BitSet) error {
	var h [1]byte
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return fmt.Errorf("failed to read type header for adaptive bitset: %w", err)
	}

	switch h[0] {
	case rawEncoding:
		// Always borrow the snappy decoder's word buffer.
		d.rd.buf = d.sd.wordBuf
		err := d.rd.ReadBitset(r, bs)
		d.sd.wordBuf = d.rd.buf
		return err
	case snappyEncoding:
		return d.sd.ReadBitset(r, bs)
	default:
		return fmt.Errorf(
			"unknown adaptive header byte 0x%x", h[0],
		)
	}
}
