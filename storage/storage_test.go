package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLikePattern(t *testing.T) {
	require.Equal(t, "%%", LikePattern(""))
	require.Equal(t, `%test\_model%`, LikePattern("test_model"))
	require.Equal(t, `%100\%%`, LikePattern("100%"))
	require.Equal(t, `%a\\b%`, LikePattern(`a\b`))
}

func TestUniqueIDs(t *testing.T) {
	require.Equal(t, []int64{3, 1, 2}, UniqueIDs([]int64{3, 1, 3, 2, 1}))
	require.Empty(t, UniqueIDs(nil))
}
