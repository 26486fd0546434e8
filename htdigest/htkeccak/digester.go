// Package htkeccak provides a legacy Keccak-256 digester,
// the variant used by Ethereum rather than standardized SHA3-256.
package htkeccak

import (
	"github.com/gordian-engine/hashtree/htdigest"
	"golang.org/x/crypto/sha3"
)

const HashSize = 32

// Digester is an [htdigest.Digester] backed by legacy Keccak-256 hashes.
type Digester struct{}

var _ htdigest.Digester = Digester{}

func (Digester) Size() int { return HashSize }

func (Digester) Sum(in []byte, dst []byte) {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(in)
	h.Sum(dst)
}

func (Digester) SumPair(left, right []byte, dst []byte) {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(left)
	_, _ = h.Write(right)
	h.Sum(dst)
}
