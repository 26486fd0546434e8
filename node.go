package hashtree

// Node is a node in a [Tree].
//
// A node with no left child is a leaf.
// A node with a left child but no right child is a promoted singleton:
// its digest is the digest of its only child's digest.
//
// Nodes are never modified after construction,
// and each node is referenced by exactly one parent.
type Node struct {
	digest Digest

	left, right *Node
}

// NewLeaf returns a leaf node holding d.
func NewLeaf(d Digest) *Node {
	return &Node{digest: d}
}

// NewBranch returns an internal node holding d,
// with the given children.
// The right child may be nil for a promoted singleton.
func NewBranch(d Digest, left, right *Node) *Node {
	return &Node{digest: d, left: left, right: right}
}

// Digest returns the node's digest.
// The returned slice must not be modified.
func (n *Node) Digest() Digest {
	return n.digest
}

// Left returns the left child, or nil for a leaf.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the right child, or nil for a leaf or promoted singleton.
func (n *Node) Right() *Node {
	return n.right
}

// IsLeaf reports whether n has no left child.
func (n *Node) IsLeaf() bool {
	return n.left == nil
}

// Equal reports whether n and o hold the same digest.
// Children are not compared;
// equal digests imply equal subtrees.
func (n *Node) Equal(o *Node) bool {
	if n == o {
		return true
	}
	if n == nil || o == nil {
		return false
	}
	return n.digest.Equal(o.digest)
}

// String returns the hex encoding of the node's digest.
func (n *Node) String() string {
	return n.digest.String()
}
