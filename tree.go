package hashtree

import (
	"fmt"
	"math/bits"

	"github.com/gordian-engine/hashtree/htlist"
)

// Tree is an immutable binary hash tree over an ordered sequence of items.
//
// Leaf i holds the digest of the i'th input item.
// Because unpaired nodes are promoted by re-hashing,
// every leaf is at depth [*Tree.Height].
//
// A Tree is safe for concurrent use.
type Tree[T any] struct {
	root *Node

	// Number of leaves, fixed at construction.
	width int

	hasher Hasher[T]
}

// New builds a tree over items, in order.
//
// New returns [ErrEmptyInput] if items is empty,
// or an error matching [ErrInvalidInput] if any item is nil
// or cannot be encoded.
// New panics if h has a nil Encoder or Digester.
func New[T any](items []T, h Hasher[T]) (*Tree[T], error) {
	h.validate()

	if len(items) == 0 {
		return nil, ErrEmptyInput
	}

	// Leaf order fixes the leaf-to-index correspondence
	// that every query depends on.
	level := make([]*Node, len(items))
	for i, item := range items {
		d, err := h.Item(item)
		if err != nil {
			return nil, fmt.Errorf("failed to digest item %d: %w", i, err)
		}
		level[i] = NewLeaf(d)
	}

	return h.newTree(level), nil
}

// NewFromList builds a tree over the values of l in insertion order.
// A nil list is treated as empty and reports [ErrEmptyInput].
func NewFromList[T any](l *htlist.List[T], h Hasher[T]) (*Tree[T], error) {
	ds, err := ListDigests(l, h)
	if err != nil {
		return nil, err
	}

	level := make([]*Node, len(ds))
	for i, d := range ds {
		level[i] = NewLeaf(d)
	}
	return h.newTree(level), nil
}

// ListDigests returns the leaf digest of each value of l, in order.
// These are the leaves a tree built from l would have.
//
// A nil or empty list reports [ErrEmptyInput].
// ListDigests panics if h is invalid.
func ListDigests[T any](l *htlist.List[T], h Hasher[T]) ([]Digest, error) {
	h.validate()

	if l == nil || l.Len() == 0 {
		return nil, ErrEmptyInput
	}

	out := make([]Digest, 0, l.Len())
	for v := range l.All() {
		d, err := h.Item(v)
		if err != nil {
			return nil, fmt.Errorf("failed to digest item %d: %w", len(out), err)
		}
		out = append(out, d)
	}
	return out, nil
}

func (h Hasher[T]) newTree(leaves []*Node) *Tree[T] {
	width := len(leaves)
	return &Tree[T]{
		root:   h.build(leaves),
		width:  width,
		hasher: h,
	}
}

// build combines level pairwise, left to right,
// until only the root remains.
// The level slice is reused as scratch space.
func (h Hasher[T]) build(level []*Node) *Node {
	for len(level) > 1 {
		// Writing at w never clobbers an unread node,
		// since w only reaches r/2.
		w := 0
		for r := 0; r < len(level); r += 2 {
			left := level[r]

			var right *Node
			var rightDigest Digest
			if r+1 < len(level) {
				right = level[r+1]
				rightDigest = right.digest
			}

			// With no right sibling, this re-hashes the left digest alone.
			level[w] = NewBranch(h.Combine(left.digest, rightDigest), left, right)
			w++
		}
		level = level[:w]
	}

	return level[0]
}

// Root returns the root node.
func (t *Tree[T]) Root() *Node {
	return t.root
}

// RootDigest returns the digest of the root node.
// The returned slice must not be modified.
func (t *Tree[T]) RootDigest() Digest {
	return t.root.digest
}

// Width returns the number of leaves, which is the number of input items.
func (t *Tree[T]) Width() int {
	return t.width
}

// Height returns ceil(log2(width)),
// the number of levels between the root and every leaf.
// A single-leaf tree has height 0.
func (t *Tree[T]) Height() int {
	return heightForWidth(t.width)
}

// Hasher returns the hasher used to build t.
func (t *Tree[T]) Hasher() Hasher[T] {
	return t.hasher
}

func heightForWidth(width int) int {
	return bits.Len(uint(width - 1))
}
