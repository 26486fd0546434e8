package htdigesttest

import (
	"testing"

	"github.com/gordian-engine/hashtree/htdigest"
	"github.com/stretchr/testify/require"
)

type DigesterFactory func() (d htdigest.Digester, hashSize int)

func TestDigesterCompliance(t *testing.T, f DigesterFactory) {
	t.Run("reports its size", func(t *testing.T) {
		t.Parallel()

		d, sz := f()
		require.Equal(t, sz, d.Size())
	})

	t.Run("sum is deterministic", func(t *testing.T) {
		t.Parallel()

		d, sz := f()

		dst01 := make([]byte, sz)
		d.Sum([]byte("deterministic_data"), dst01[:0])

		dst02 := make([]byte, sz)
		d.Sum([]byte("deterministic_data"), dst02[:0])

		require.Equal(t, dst01, dst02)
		require.NotEqual(t, make([]byte, sz), dst01)
	})

	t.Run("sum respects input", func(t *testing.T) {
		t.Parallel()

		d, sz := f()

		dst01 := make([]byte, sz)
		d.Sum([]byte("hello"), dst01[:0])

		dst02 := make([]byte, sz)
		d.Sum([]byte("hellp"), dst02[:0])

		require.NotEqual(t, dst01, dst02)
	})

	t.Run("pair matches concatenation", func(t *testing.T) {
		t.Parallel()

		d, sz := f()

		left := []byte("left_half")
		right := []byte("right_half")

		pair := make([]byte, sz)
		d.SumPair(left, right, pair[:0])

		concat := make([]byte, sz)
		d.Sum(append(append([]byte(nil), left...), right...), concat[:0])

		require.Equal(t, concat, pair)
	})

	t.Run("pair respects order", func(t *testing.T) {
		t.Parallel()

		d, sz := f()

		lr := make([]byte, sz)
		d.SumPair([]byte("a"), []byte("b"), lr[:0])

		rl := make([]byte, sz)
		d.SumPair([]byte("b"), []byte("a"), rl[:0])

		require.NotEqual(t, lr, rl)
	})

	t.Run("pair with empty right side is a plain sum", func(t *testing.T) {
		t.Parallel()

		d, sz := f()

		alone := make([]byte, sz)
		d.SumPair([]byte("singleton"), nil, alone[:0])

		sum := make([]byte, sz)
		d.Sum([]byte("singleton"), sum[:0])

		require.Equal(t, sum, alone)
	})

	t.Run("does not write past size", func(t *testing.T) {
		t.Parallel()

		d, sz := f()

		// Guard bytes after the destination must survive.
		buf := make([]byte, sz+4)
		copy(buf[sz:], []byte{0xde, 0xad, 0xbe, 0xef})

		d.SumPair([]byte("x"), []byte("y"), buf[:0])
		require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, buf[sz:])
	})
}
