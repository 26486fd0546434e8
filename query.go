package hashtree

// NotFound is the index reported for an item that has no matching leaf.
const NotFound = -1

// IndexOf returns the 0-based index of the first leaf
// whose digest matches item, or [NotFound].
//
// Leaves are visited left to right, so for a tree built from distinct items,
// IndexOf returns the item's position in the input.
func (t *Tree[T]) IndexOf(item T) (int, error) {
	return t.IndexWithin(t.root, item)
}

// IndexWithin is like [*Tree.IndexOf], but searches only the given subtree.
// The result is an offset from the subtree's leftmost leaf,
// not an index into the whole tree.
func (t *Tree[T]) IndexWithin(subtree *Node, item T) (int, error) {
	if subtree == nil {
		return NotFound, ErrNilArgument
	}

	d, err := t.hasher.Item(item)
	if err != nil {
		return NotFound, err
	}

	idx, _ := leafIndex(subtree, d, 0)
	return idx, nil
}

// leafIndex searches the leaves under n in order.
// seen is the number of leaves already passed over;
// the returned count includes the leaves under n that were passed over,
// so a caller can continue the search to the right.
func leafIndex(n *Node, d Digest, seen int) (idx, passed int) {
	if n == nil {
		return NotFound, seen
	}

	if n.IsLeaf() {
		if n.digest.Equal(d) {
			return seen, seen
		}
		return NotFound, seen + 1
	}

	idx, seen = leafIndex(n.left, d, seen)
	if idx != NotFound {
		return idx, seen
	}
	return leafIndex(n.right, d, seen)
}

// ContainsDigest reports whether any node in t has digest d.
//
// Internal nodes are matched too, not only leaves.
// A value whose digest happens to equal an internal node's digest
// is therefore reported as present.
func (t *Tree[T]) ContainsDigest(d Digest) bool {
	return containsDigest(t.root, d)
}

func containsDigest(n *Node, d Digest) bool {
	if n == nil {
		return false
	}
	if n.digest.Equal(d) {
		return true
	}
	if n.IsLeaf() {
		return false
	}
	return containsDigest(n.left, d) || containsDigest(n.right, d)
}

// ValidateData reports whether the digest of item appears in t.
// See [*Tree.ContainsDigest] for matching rules.
func (t *Tree[T]) ValidateData(item T) (bool, error) {
	d, err := t.hasher.Item(item)
	if err != nil {
		return false, err
	}
	return containsDigest(t.root, d), nil
}

// ValidateBranch reports whether the digest of branch appears in t.
// See [*Tree.ContainsDigest] for matching rules.
func (t *Tree[T]) ValidateBranch(branch *Node) (bool, error) {
	if branch == nil {
		return false, ErrNilArgument
	}
	return containsDigest(t.root, branch.digest), nil
}

// ValidateTree reports whether other has the same width and root digest as t.
// Equal roots over equal widths are taken as equal leaf content,
// relying on the digest function's collision resistance.
func (t *Tree[T]) ValidateTree(other *Tree[T]) (bool, error) {
	if other == nil {
		return false, ErrNilArgument
	}
	if t.width != other.width {
		return false, nil
	}
	return t.root.digest.Equal(other.root.digest), nil
}
