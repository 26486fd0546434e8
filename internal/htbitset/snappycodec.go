package htbitset

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
	"github.com/golang/snappy"
)

// SnappyEncoder writes the bit set's words compressed with snappy,
// prefixed with the big endian uint32 length of the compressed data.
type SnappyEncoder struct {
	// The little endian bytes of the bitset's Words.
	// If encoded through the AdaptiveEncoder,
	// it also has a 1-byte prefix of the [rawEncoding] header,
	// so it can be written directly when compression does not pay off.
	wordBuf []byte

	// The snappy-encoded version of wordBuf with its length prefix,
	// plus the [snappyEncoding] header byte when adaptive.
	encBuf []byte
}

const snappyLenSize = 4

func (e *SnappyEncoder) encode(bs *bitset.BitSet, adaptive bool) {
	words := bs.Words()
	nBytes := 8 * len(words)
	if adaptive {
		nBytes++
	}

	if cap(e.wordBuf) < nBytes {
		e.wordBuf = make([]byte, nBytes)
	} else {
		e.wordBuf = e.wordBuf[:nBytes]
	}

	wordBuf := e.wordBuf
	if adaptive {
		wordBuf[0] = rawEncoding
		wordBuf = wordBuf[1:]
	}
	putWords(wordBuf, words)

	maxEnc := snappy.MaxEncodedLen(len(wordBuf)) + snappyLenSize
	if adaptive {
		maxEnc++
	}

	if cap(e.encBuf) < maxEnc {
		e.encBuf = make([]byte, maxEnc)
	} else {
		e.encBuf = e.encBuf[:maxEnc]
	}
	encBuf := e.encBuf
	if adaptive {
		encBuf[0] = snappyEncoding
		encBuf = encBuf[1:]
	}

	// Compress first, then backfill the size header.
	res := snappy.Encode(encBuf[snappyLenSize:], wordBuf)
	binary.BigEndian.PutUint32(encBuf, uint32(len(res)))

	n := snappyLenSize + len(res)
	if adaptive {
		n++
	}
	e.encBuf = e.encBuf[:n]
}

func (e *SnappyEncoder) WriteBitset(w io.Writer, bs *bitset.BitSet) error {
	e.encode(bs, false)
	return e.write(w)
}

func (e *SnappyEncoder) write(w io.Writer) error {
	if _, err := w.Write(e.encBuf); err != nil {
		return fmt.Errorf("failed to write snappy bitset: %w", err)
	}
	return nil
}

// SnappyDecoder reads bit sets written by [*SnappyEncoder].
type SnappyDecoder struct {
	// Holds the snappy-encoded bytes.
	encBuf []byte

	// The snappy-decoded bytes,
	// to be interpreted as uint64s to back the bitset's Words.
	wordBuf []byte
}

func (d *SnappyDecoder) ReadBitset(r io.Reader, bs *bitset.BitSet) error {
	var lenBuf [snappyLenSize]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return fmt.Errorf("failed to read snappy length for bitset: %w", err)
	}

	words := bs.Words()

	// The compressed form can never exceed this bound for the expected size,
	// so anything larger is corrupt and must not drive an allocation.
	encSz := binary.BigEndian.Uint32(lenBuf[:])
	if maxSz := snappy.MaxEncodedLen(8 * len(words)); int64(encSz) > int64(maxSz) {
		return fmt.Errorf(
			"snappy bitset length %d exceeds maximum %d for %d words",
			encSz, maxSz, len(words),
		)
	}

	if cap(d.encBuf) < int(encSz) {
		d.encBuf = make([]byte, encSz)
	} else {
		d.encBuf = d.encBuf[:encSz]
	}

	if _, err := io.ReadFull(r, d.encBuf); err != nil {
		return fmt.Errorf("failed to read snappy-encoded bitset: %w", err)
	}

	decSz, err := snappy.DecodedLen(d.encBuf)
	if err != nil {
		return fmt.Errorf("failed to calculate snappy-decoded bitset length: %w", err)
	}
	if len(words)*8 != decSz {
		return fmt.Errorf(
			"calculated decoded size of %d bytes but expected %d",
			decSz, len(words)*8,
		)
	}

	wb, err := snappy.Decode(d.wordBuf, d.encBuf)
	if err != nil {
		return fmt.Errorf("failed to decode snappy bitset: %w", err)
	}

	// wb could have been nil on error;
	// that's why we used the temporary variable.
	d.wordBuf = wb

	getWords(words, d.wordBuf)
	return nil
}
