package hashtree

import (
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
	"github.com/gordian-engine/hashtree/internal/htbitset"
)

// FindInvalidIndices returns the set of leaf indices
// whose digests differ between t and other.
//
// The returned set has length t.Width().
// Both trees must have the same width;
// otherwise the error matches [ErrWidthMismatch].
//
// Only subtrees whose digests differ are descended into,
// so the work is bounded by the tree height
// times the number of differing leaves.
func (t *Tree[T]) FindInvalidIndices(other *Tree[T]) (*bitset.BitSet, error) {
	if other == nil {
		return nil, ErrNilArgument
	}
	if t.width != other.width {
		return nil, fmt.Errorf("%w: %d != %d", ErrWidthMismatch, t.width, other.width)
	}

	invalid := bitset.MustNew(uint(t.width))
	if t.root.digest.Equal(other.root.digest) {
		return invalid, nil
	}

	diffNodes(t.root, other.root, 0, t.width, t.Height(), invalid)
	return invalid, nil
}

// diffNodes records differing leaves under a and b.
// start is the index of the subtree's leftmost leaf;
// width and height describe the subtree.
func diffNodes(a, b *Node, start, width, height int, invalid *bitset.BitSet) {
	if a.digest.Equal(b.digest) {
		return
	}

	if a.IsLeaf() && b.IsLeaf() {
		invalid.Set(uint(start))
		return
	}

	// The left child is always full unless the whole subtree is smaller.
	leftWidth := min(width, 1<<(height-1))
	diffNodes(a.left, b.left, start, leftWidth, height-1, invalid)

	if rightWidth := width - leftWidth; rightWidth > 0 {
		diffNodes(a.right, b.right, start+leftWidth, rightWidth, height-1, invalid)
	}
}

// WriteIndexSet writes bs in a compact form suitable for [ReadIndexSet].
// The set's length is not written;
// the reader must already know the tree width.
func WriteIndexSet(w io.Writer, bs *bitset.BitSet) error {
	var enc htbitset.AdaptiveEncoder
	return enc.WriteBitset(w, bs)
}

// ReadIndexSet reads a set written by [WriteIndexSet]
// for a tree of the given width.
//
// An error is returned if the encoded set has any index at or beyond width.
func ReadIndexSet(r io.Reader, width int) (*bitset.BitSet, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: index set width must be positive (got %d)", ErrInvalidInput, width)
	}

	bs := bitset.MustNew(uint(width))

	var dec htbitset.AdaptiveDecoder
	if err := dec.ReadBitset(r, bs); err != nil {
		return nil, fmt.Errorf("failed to read index set: %w", err)
	}

	// Decoding fills whole words, so bits past width may have been set.
	if tail := uint(width) % 64; tail != 0 {
		words := bs.Words()
		if words[len(words)-1]>>tail != 0 {
			return nil, fmt.Errorf("%w: index set has indices beyond width %d", ErrInvalidInput, width)
		}
	}

	return bs, nil
}
