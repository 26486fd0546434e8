package htdigest

// Digester is the user-defined digest function for a hash tree.
// The tree passes encoded item bytes to Sum to create a leaf digest,
// and it passes two child digests to SumPair to create a parent digest.
//
// To be allocation-efficient, the Digester implementation
// must append its output to dst, instead of creating a new byte slice;
// callers provide a dst with capacity for at least Size bytes.
// Digester must not retain references to dst.
//
// SumPair(left, right, dst) must produce exactly the same output
// as Sum on the concatenation of left and right.
// A tree re-hashes an unpaired node alone, and proofs express that
// with an empty sibling, so SumPair(x, nil, dst) is Sum(x, dst).
//
// Furthermore, Digester methods must be safe to call concurrently.
type Digester interface {
	// Size is the fixed length in bytes of every digest.
	Size() int

	Sum(in []byte, dst []byte)
	SumPair(left, right []byte, dst []byte)
}
