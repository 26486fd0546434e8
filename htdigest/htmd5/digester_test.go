package htmd5_test

import (
	"encoding/hex"
	"testing"

	"github.com/gordian-engine/hashtree/htdigest"
	"github.com/gordian-engine/hashtree/htdigest/htdigesttest"
	"github.com/gordian-engine/hashtree/htdigest/htmd5"
	"github.com/stretchr/testify/require"
)

func TestCompliance(t *testing.T) {
	t.Parallel()

	htdigesttest.TestDigesterCompliance(t, func() (htdigest.Digester, int) {
		return htmd5.Digester{}, htmd5.HashSize
	})
}

func TestDigester_knownAnswer(t *testing.T) {
	t.Parallel()

	dst := make([]byte, htmd5.HashSize)
	htmd5.Digester{}.Sum([]byte("abc"), dst[:0])

	require.Equal(t, "900150983cd24fb0d6963f7d28e17f72", hex.EncodeToString(dst))
}
