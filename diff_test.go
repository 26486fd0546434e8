package hashtree_test

import (
	"bytes"
	"fmt"
	"slices"
	"testing"

	"github.com/gordian-engine/hashtree"
	"github.com/gordian-engine/hashtree/internal/httest"
	"github.com/stretchr/testify/require"
)

func TestTree_FindInvalidIndices_threeItems(t *testing.T) {
	t.Parallel()

	a := mustTree(t, []string{"A", "B", "C"}, stringHasher())
	b := mustTree(t, []string{"A", "B", "C'"}, stringHasher())

	invalid, err := a.FindInvalidIndices(b)
	require.NoError(t, err)
	require.Equal(t, uint(3), invalid.Len())
	require.Equal(t, uint(1), invalid.Count())
	require.True(t, invalid.Test(2))
}

func TestTree_FindInvalidIndices_identical(t *testing.T) {
	t.Parallel()

	items := httest.RandomItemsForTest(t, 10, 8)
	a := mustTree(t, items, bytesHasher())

	invalid, err := a.FindInvalidIndices(a)
	require.NoError(t, err)
	require.Zero(t, invalid.Count())
	require.Equal(t, uint(10), invalid.Len())
}

func TestTree_FindInvalidIndices_singleChange(t *testing.T) {
	t.Parallel()

	for _, width := range []int{1, 2, 3, 5, 8, 11, 16, 31} {
		t.Run(fmt.Sprintf("width=%d", width), func(t *testing.T) {
			t.Parallel()

			items := httest.RandomItemsForTest(t, width, 8)
			orig := mustTree(t, items, bytesHasher())

			for i := range width {
				changed := slices.Clone(items)
				changed[i] = bytes.Repeat([]byte{0xff}, 9)

				invalid, err := orig.FindInvalidIndices(mustTree(t, changed, bytesHasher()))
				require.NoError(t, err)
				require.Equal(t, uint(1), invalid.Count(), "changed index %d", i)
				require.True(t, invalid.Test(uint(i)), "changed index %d", i)
			}
		})
	}
}

func TestTree_FindInvalidIndices_manyChanges(t *testing.T) {
	t.Parallel()

	items := httest.RandomItemsForTest(t, 21, 8)
	orig := mustTree(t, items, bytesHasher())

	changedIdxs := []int{0, 4, 5, 13, 20}
	changed := slices.Clone(items)
	for _, i := range changedIdxs {
		changed[i] = []byte(fmt.Sprintf("changed-%d", i))
	}

	invalid, err := orig.FindInvalidIndices(mustTree(t, changed, bytesHasher()))
	require.NoError(t, err)

	var got []int
	for i, ok := invalid.NextSet(0); ok; i, ok = invalid.NextSet(i + 1) {
		got = append(got, int(i))
	}
	require.Equal(t, changedIdxs, got)
}

func TestTree_FindInvalidIndices_errors(t *testing.T) {
	t.Parallel()

	a := mustTree(t, []string{"A", "B", "C"}, stringHasher())

	_, err := a.FindInvalidIndices(nil)
	require.ErrorIs(t, err, hashtree.ErrNilArgument)

	_, err = a.FindInvalidIndices(mustTree(t, []string{"A", "B"}, stringHasher()))
	require.ErrorIs(t, err, hashtree.ErrWidthMismatch)
	require.ErrorIs(t, err, hashtree.ErrInvalidInput)
}

func TestIndexSet_roundTrip(t *testing.T) {
	t.Parallel()

	for _, width := range []int{1, 7, 64, 65, 200} {
		t.Run(fmt.Sprintf("width=%d", width), func(t *testing.T) {
			t.Parallel()

			items := httest.RandomItemsForTest(t, width, 8)
			orig := mustTree(t, items, bytesHasher())

			changed := slices.Clone(items)
			for i := 0; i < width; i += 3 {
				changed[i] = []byte(fmt.Sprintf("changed-%d", i))
			}

			invalid, err := orig.FindInvalidIndices(mustTree(t, changed, bytesHasher()))
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, hashtree.WriteIndexSet(&buf, invalid))

			got, err := hashtree.ReadIndexSet(&buf, width)
			require.NoError(t, err)
			require.True(t, invalid.Equal(got))
			require.Zero(t, buf.Len())
		})
	}
}

func TestReadIndexSet_errors(t *testing.T) {
	t.Parallel()

	t.Run("bits beyond width", func(t *testing.T) {
		t.Parallel()

		wide := mustTree(t, []string{"A", "B", "C", "D"}, stringHasher())
		wideChanged := mustTree(t, []string{"A", "B", "C", "X"}, stringHasher())
		invalid, err := wide.FindInvalidIndices(wideChanged)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, hashtree.WriteIndexSet(&buf, invalid))

		_, err = hashtree.ReadIndexSet(&buf, 3)
		require.ErrorIs(t, err, hashtree.ErrInvalidInput)
	})

	t.Run("non-positive width", func(t *testing.T) {
		t.Parallel()

		_, err := hashtree.ReadIndexSet(bytes.NewReader([]byte{0}), 0)
		require.ErrorIs(t, err, hashtree.ErrInvalidInput)
	})

	t.Run("truncated", func(t *testing.T) {
		t.Parallel()

		_, err := hashtree.ReadIndexSet(bytes.NewReader([]byte{0, 1, 2}), 10)
		require.Error(t, err)
	})
}
