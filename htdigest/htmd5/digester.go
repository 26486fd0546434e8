// Package htmd5 provides an MD5 digester.
//
// MD5 is not collision resistant.
// It is only suitable where compatibility with existing MD5 tree roots
// matters more than resistance to deliberately crafted collisions.
package htmd5

import (
	"crypto/md5"

	"github.com/gordian-engine/hashtree/htdigest"
)

const HashSize = md5.Size

// Digester is an [htdigest.Digester] backed by MD5 hashes.
type Digester struct{}

var _ htdigest.Digester = Digester{}

func (Digester) Size() int { return HashSize }

func (Digester) Sum(in []byte, dst []byte) {
	h := md5.New()
	_, _ = h.Write(in)
	h.Sum(dst)
}

func (Digester) SumPair(left, right []byte, dst []byte) {
	h := md5.New()
	_, _ = h.Write(left)
	_, _ = h.Write(right)
	h.Sum(dst)
}
