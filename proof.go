package hashtree

import (
	"fmt"
	"iter"
	"slices"

	"github.com/gordian-engine/hashtree/htlist"
)

// ProofStep is one level of a [Proof]:
// the sibling digest to combine with, and which side the sibling is on.
type ProofStep struct {
	// Sibling digest.
	// Empty when the node at this level had no sibling,
	// in which case the running digest is re-hashed alone.
	// Steps yielded by [*Proof.Steps] share this slice with the proof,
	// so it must not be modified.
	Digest Digest

	// Whether the sibling is the left operand of the combination.
	IsLeftSibling bool
}

// Equal reports whether s and o have the same digest and side.
func (s ProofStep) Equal(o ProofStep) bool {
	return s.IsLeftSibling == o.IsLeftSibling && s.Digest.Equal(o.Digest)
}

func (s ProofStep) String() string {
	side := "R"
	if s.IsLeftSibling {
		side = "L"
	}
	return s.Digest.String() + "/" + side
}

// Proof is an ordered list of sibling digests
// that folds a leaf or branch digest up to a root digest.
//
// Steps are ordered from the target's level up to the root.
// A Proof is built once, with [NewProof] and [*Proof.AddStep],
// and is then safe for concurrent verification.
type Proof[T any] struct {
	root      Digest
	maxLength int

	steps *htlist.List[ProofStep]

	hasher Hasher[T]
}

// NewProof returns an empty proof against root
// that accepts at most maxLength steps.
// The proof keeps its own copy of root.
//
// NewProof panics if root is empty, maxLength is negative,
// or h is invalid.
func NewProof[T any](root Digest, maxLength int, h Hasher[T]) *Proof[T] {
	h.validate()
	if len(root) == 0 {
		panic(fmt.Errorf("BUG: NewProof requires a non-empty root digest"))
	}
	if maxLength < 0 {
		panic(fmt.Errorf("BUG: NewProof requires a non-negative max length (got %d)", maxLength))
	}

	return &Proof[T]{
		root:      slices.Clone(root),
		maxLength: maxLength,
		steps:     htlist.New(ProofStep.Equal),
		hasher:    h,
	}
}

// AddStep appends a step at the top of p.
// It reports false, without modifying p, if p already holds MaxLength steps.
// The proof keeps its own copy of d,
// and a nil d is stored as an empty digest.
func (p *Proof[T]) AddStep(d Digest, isLeftSibling bool) bool {
	if p.steps.Len() >= p.maxLength {
		return false
	}

	// Never share bytes with the tree the steps came from.
	c := make(Digest, len(d))
	copy(c, d)
	p.steps.PushBack(ProofStep{Digest: c, IsLeftSibling: isLeftSibling})
	return true
}

// RootDigest returns the root digest the proof folds towards.
// The returned slice must not be modified.
func (p *Proof[T]) RootDigest() Digest {
	return p.root
}

// MaxLength returns the number of steps the proof was sized for.
func (p *Proof[T]) MaxLength() int {
	return p.maxLength
}

// Len returns the number of steps added so far.
func (p *Proof[T]) Len() int {
	return p.steps.Len()
}

// Steps iterates the proof steps, bottom first.
func (p *Proof[T]) Steps() iter.Seq[ProofStep] {
	return p.steps.All()
}

// VerifyData reports whether item folds up to the proof's root.
// A nil or unencodable item is an error, not a failed verification.
func (p *Proof[T]) VerifyData(item T) (bool, error) {
	d, err := p.hasher.Item(item)
	if err != nil {
		return false, err
	}
	return p.VerifyDigest(d), nil
}

// VerifyBranch reports whether branch's digest folds up to the proof's root.
func (p *Proof[T]) VerifyBranch(branch *Node) (bool, error) {
	if branch == nil {
		return false, ErrNilArgument
	}
	return p.VerifyDigest(branch.digest), nil
}

// VerifyDigest reports whether d folds up to the proof's root.
func (p *Proof[T]) VerifyDigest(d Digest) bool {
	cur := d
	for s := range p.steps.All() {
		if s.IsLeftSibling {
			cur = p.hasher.Combine(s.Digest, cur)
		} else {
			cur = p.hasher.Combine(cur, s.Digest)
		}
	}
	return cur.Equal(p.root)
}

// LeafIndex returns the leaf index a data proof commits to,
// derived from the side of each step.
//
// The second result is false if the proof has fewer steps than its max length,
// since the index is then ambiguous.
// LeafIndex does not verify the proof.
func (p *Proof[T]) LeafIndex() (int, bool) {
	if p.steps.Len() != p.maxLength {
		return 0, false
	}

	idx := 0
	i := 0
	for s := range p.steps.All() {
		// A left sibling means the running node was a right child.
		if s.IsLeftSibling {
			idx |= 1 << i
		}
		i++
	}
	return idx, true
}

func (p *Proof[T]) String() string {
	return fmt.Sprintf("Proof{root=%s steps=%d/%d}", p.root, p.steps.Len(), p.maxLength)
}
