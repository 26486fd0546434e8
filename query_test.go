package hashtree_test

import (
	"fmt"
	"testing"

	"github.com/gordian-engine/hashtree"
	"github.com/gordian-engine/hashtree/internal/httest"
	"github.com/stretchr/testify/require"
)

func TestTree_IndexOf(t *testing.T) {
	t.Parallel()

	for _, width := range []int{1, 2, 3, 7, 8, 33} {
		t.Run(fmt.Sprintf("width=%d", width), func(t *testing.T) {
			t.Parallel()

			items := httest.RandomItemsForTest(t, width, 16)
			tree := mustTree(t, items, bytesHasher())

			for i, item := range items {
				idx, err := tree.IndexOf(item)
				require.NoError(t, err)
				require.Equal(t, i, idx)
			}

			idx, err := tree.IndexOf([]byte("not an item"))
			require.NoError(t, err)
			require.Equal(t, hashtree.NotFound, idx)
		})
	}
}

func TestTree_IndexOf_duplicates(t *testing.T) {
	t.Parallel()

	tree := mustTree(t, []string{"x", "y", "x"}, stringHasher())

	idx, err := tree.IndexOf("x")
	require.NoError(t, err)
	require.Zero(t, idx)
}

func TestTree_IndexWithin(t *testing.T) {
	t.Parallel()

	tree := mustTree(t, []string{"A", "B", "C", "D", "E"}, stringHasher())

	// Root's right child covers E alone.
	right := tree.Root().Right()
	idx, err := tree.IndexWithin(right, "E")
	require.NoError(t, err)
	require.Zero(t, idx)

	idx, err = tree.IndexWithin(right, "A")
	require.NoError(t, err)
	require.Equal(t, hashtree.NotFound, idx)

	idx, err = tree.IndexWithin(tree.Root().Left(), "D")
	require.NoError(t, err)
	require.Equal(t, 3, idx)

	_, err = tree.IndexWithin(nil, "A")
	require.ErrorIs(t, err, hashtree.ErrNilArgument)
}

func TestTree_IndexOf_nilItem(t *testing.T) {
	t.Parallel()

	h := hashtree.Hasher[*string]{
		Encoder:  func(s *string) ([]byte, error) { return []byte(*s), nil },
		Digester: stringHasher().Digester,
	}
	a := "a"
	tree := mustTree(t, []*string{&a}, h)

	_, err := tree.IndexOf(nil)
	require.ErrorIs(t, err, hashtree.ErrInvalidInput)
}

func TestTree_ValidateData(t *testing.T) {
	t.Parallel()

	tree := mustTree(t, []string{"A", "B", "C"}, stringHasher())

	for _, item := range []string{"A", "B", "C"} {
		ok, err := tree.ValidateData(item)
		require.NoError(t, err)
		require.True(t, ok, item)
	}

	ok, err := tree.ValidateData("D")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTree_ContainsDigest_matchesInternalNodes(t *testing.T) {
	t.Parallel()

	tree := mustTree(t, []string{"A", "B", "C"}, stringHasher())

	// Membership matches any node, not only leaves.
	require.True(t, tree.ContainsDigest(tree.RootDigest()))
	require.True(t, tree.ContainsDigest(tree.Root().Left().Digest()))

	// So an item whose encoding digests to an internal node's digest
	// is reported as present.
	l0 := sum([]byte("A"))
	l1 := sum([]byte("B"))
	crafted := string(append(append([]byte(nil), l0...), l1...))
	ok, err := tree.ValidateData(crafted)
	require.NoError(t, err)
	require.True(t, ok)

	require.False(t, tree.ContainsDigest(sum([]byte("D"))))
}

func TestTree_ValidateBranch(t *testing.T) {
	t.Parallel()

	tree := mustTree(t, []string{"A", "B", "C", "D"}, stringHasher())
	same := mustTree(t, []string{"A", "B", "C", "D"}, stringHasher())
	other := mustTree(t, []string{"W", "X", "Y", "Z"}, stringHasher())

	ok, err := tree.ValidateBranch(same.Root().Right())
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = tree.ValidateBranch(other.Root().Right())
	require.NoError(t, err)
	require.False(t, ok)

	_, err = tree.ValidateBranch(nil)
	require.ErrorIs(t, err, hashtree.ErrNilArgument)
}

func TestTree_ValidateTree(t *testing.T) {
	t.Parallel()

	a := mustTree(t, []string{"A", "B", "C"}, stringHasher())

	ok, err := a.ValidateTree(a)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = a.ValidateTree(mustTree(t, []string{"A", "B", "C"}, stringHasher()))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = a.ValidateTree(mustTree(t, []string{"A", "B", "X"}, stringHasher()))
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = a.ValidateTree(mustTree(t, []string{"A", "B"}, stringHasher()))
	require.NoError(t, err)
	require.False(t, ok)

	_, err = a.ValidateTree(nil)
	require.ErrorIs(t, err, hashtree.ErrNilArgument)
}
