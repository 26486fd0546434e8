package hashtree

import "fmt"

// ProofForData returns a proof that item is a leaf of t.
//
// The proof has max length t.Height()
// and holds one step per level between the leaf and the root.
// The error matches [ErrNotInTree] if no node of t has item's digest.
func (t *Tree[T]) ProofForData(item T) (*Proof[T], error) {
	d, err := t.hasher.Item(item)
	if err != nil {
		return nil, err
	}

	steps, _, ok := collectSteps(t.root, d, 0)
	if !ok {
		return nil, ErrNotInTree
	}
	return t.newProof(steps, t.Height()), nil
}

// ProofForBranch returns a proof that branch is a subtree of t.
//
// The proof's max length is the depth at which branch was found,
// which is t.Height() minus the height of branch.
func (t *Tree[T]) ProofForBranch(branch *Node) (*Proof[T], error) {
	if branch == nil {
		return nil, ErrNilArgument
	}

	steps, depth, ok := collectSteps(t.root, branch.digest, 0)
	if !ok {
		return nil, ErrNotInTree
	}
	return t.newProof(steps, depth), nil
}

// ProofForLeaf returns a proof for the leaf at position idx.
//
// Unlike [*Tree.ProofForData], the leaf is found by position,
// so a proof can be made for each of several leaves with equal digests.
func (t *Tree[T]) ProofForLeaf(idx int) (*Proof[T], error) {
	if idx < 0 || idx >= t.width {
		return nil, fmt.Errorf(
			"%w: leaf index %d out of range [0, %d)",
			ErrInvalidInput, idx, t.width,
		)
	}

	h := t.Height()
	steps := make([]ProofStep, h)

	// Descend by position, filling steps from the top down.
	n, width := t.root, t.width
	for level := h; level > 0; level-- {
		leftWidth := min(width, 1<<(level-1))
		if idx < leftWidth {
			sibling := Digest{}
			if n.right != nil {
				sibling = n.right.digest
			}
			steps[level-1] = ProofStep{Digest: sibling}
			n, width = n.left, leftWidth
		} else {
			steps[level-1] = ProofStep{Digest: n.left.digest, IsLeftSibling: true}
			n, width, idx = n.right, width-leftWidth, idx-leftWidth
		}
	}

	return t.newProof(steps, h), nil
}

// newProof is only called once the steps are known,
// so that the proof can be sized before it is filled.
func (t *Tree[T]) newProof(steps []ProofStep, maxLength int) *Proof[T] {
	p := NewProof(t.root.digest, maxLength, t.hasher)
	for _, s := range steps {
		if !p.AddStep(s.Digest, s.IsLeftSibling) {
			panic(fmt.Errorf(
				"BUG: proof overflow: %d steps collected for max length %d",
				len(steps), maxLength,
			))
		}
	}
	return p
}

// collectSteps searches n depth-first, left before right, for digest d.
// On a match it returns the sibling steps from the match up to n,
// and the depth of the match relative to the original call.
func collectSteps(n *Node, d Digest, depth int) (steps []ProofStep, matchDepth int, ok bool) {
	if n == nil {
		return nil, 0, false
	}
	if n.digest.Equal(d) {
		return nil, depth, true
	}
	if n.IsLeaf() {
		return nil, 0, false
	}

	if steps, matchDepth, ok = collectSteps(n.left, d, depth+1); ok {
		sibling := Digest{}
		if n.right != nil {
			sibling = n.right.digest
		}
		return append(steps, ProofStep{Digest: sibling}), matchDepth, true
	}

	if steps, matchDepth, ok = collectSteps(n.right, d, depth+1); ok {
		return append(steps, ProofStep{Digest: n.left.digest, IsLeftSibling: true}), matchDepth, true
	}

	return nil, 0, false
}
