package htblake3

import (
	"github.com/gordian-engine/hashtree/htdigest"
	"github.com/zeebo/blake3"
)

// HashSize is the default BLAKE3 output length.
const HashSize = 32

// Digester is an [htdigest.Digester] backed by BLAKE3 hashes
// with the default 32-byte output.
type Digester struct{}

var _ htdigest.Digester = Digester{}

func (Digester) Size() int { return HashSize }

func (Digester) Sum(in []byte, dst []byte) {
	h := blake3.New()
	_, _ = h.Write(in)
	h.Sum(dst)
}

func (Digester) SumPair(left, right []byte, dst []byte) {
	h := blake3.New()
	_, _ = h.Write(left)
	_, _ = h.Write(right)
	h.Sum(dst)
}
