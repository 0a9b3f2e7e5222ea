package collections_test

import (
	"testing"

	"github.com/alkime/podcurate/pkg/collections"

	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	t.Run("basic types", func(t *testing.T) {
		ints := []int{1, 2, 3, 4}
		squared := collections.Apply(ints, func(i int) int {
			return i * i
		})

		require.Equal(t, []int{1, 4, 9, 16}, squared)

		lengths := collections.Apply([]string{"a", "bb", "ccc"}, func(s string) int {
			return len(s)
		})

		require.Equal(t, []int{1, 2, 3}, lengths)
	})
}

func TestFilter(t *testing.T) {
	type item struct {
		Label string
		Liked bool
	}

	items := []item{
		{Label: "國際", Liked: true},
		{Label: "中國", Liked: false},
		{Label: "生活日常", Liked: true},
	}

	liked := collections.Filter(items, func(i item) bool { return i.Liked })
	require.Equal(t, []string{"國際", "生活日常"}, collections.Apply(liked, func(i item) string {
		return i.Label
	}))
	require.Equal(t, 2, collections.Count(items, func(i item) bool { return i.Liked }))

	none := collections.Filter(items, func(item) bool { return false })
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestWrap(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 12, 0},
		{12, 12, 0},
		{-1, 12, 11},
		{-13, 12, 11},
		{25, 12, 1},
		{3, 0, 0},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, collections.Wrap(tt.i, tt.n), "Wrap(%d, %d)", tt.i, tt.n)
	}
}
