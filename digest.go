package hashtree

import (
	"bytes"
	"encoding/hex"
)

// Digest is the output of a digest function.
// Two digests are equal when their bytes are equal.
//
// A zero-length Digest is meaningful as a proof step:
// it marks a level where the node had no sibling.
type Digest []byte

// Equal reports whether d and o hold the same bytes.
func (d Digest) Equal(o Digest) bool {
	return bytes.Equal(d, o)
}

// String returns the lowercase hex encoding of d.
func (d Digest) String() string {
	return hex.EncodeToString(d)
}
