package htsha256

import (
	"crypto/sha256"

	"github.com/gordian-engine/hashtree/htdigest"
)

const HashSize = sha256.Size

// Digester is a [htdigest.Digester] backed by SHA256 hashes.
type Digester struct{}

var _ htdigest.Digester = Digester{}

func (Digester) Size() int { return HashSize }

func (Digester) Sum(in []byte, dst []byte) {
	h := sha256.New()
	_, _ = h.Write(in)
	h.Sum(dst)
}

func (Digester) SumPair(left, right []byte, dst []byte) {
	h := sha256.New()
	_, _ = h.Write(left)
	_, _ = h.Write(right)
	h.Sum(dst)
}
