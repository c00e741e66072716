package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		perPage  int
		numPages int
		paged    bool
	}{
		{"empty", 0, 5, 1, false},
		{"single partial page", 3, 5, 1, false},
		{"exact single page", 5, 5, 1, false},
		{"two pages", 6, 5, 2, true},
		{"cars", 22, 5, 5, true},
		{"manufacturers", 23, 5, 5, true},
		{"drivers", 27, 5, 6, true},
		{"zero page size clamps", 3, 0, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.count, tt.perPage)
			require.Equal(t, tt.numPages, p.NumPages)
			require.Equal(t, tt.paged, p.IsPaginated())
		})
	}
}

func TestPage_LastPageHoldsRemainder(t *testing.T) {
	for _, count := range []int{1, 4, 5, 6, 22, 23, 25, 27} {
		p := New(count, 5)
		page, err := p.Page(LastPage)
		require.NoError(t, err)

		want := count % 5
		if want == 0 {
			want = 5
		}
		require.Equal(t, want, page.EndIndex-page.StartIndex+1, "count=%d", count)
		require.False(t, page.HasNext)
	}
}

func TestPage_Resolve(t *testing.T) {
	p := New(22, 5)

	page, err := p.Page("")
	require.NoError(t, err)
	require.Equal(t, 1, page.Number)
	require.Equal(t, 0, page.Offset)
	require.Equal(t, 5, page.Limit)
	require.True(t, page.HasNext)
	require.False(t, page.HasPrevious)
	require.Equal(t, 2, page.NextPageNumber)
	require.Equal(t, 1, page.StartIndex)
	require.Equal(t, 5, page.EndIndex)

	page, err = p.Page(" 3 ")
	require.NoError(t, err)
	require.Equal(t, 10, page.Offset)
	require.Equal(t, 2, page.PreviousPageNumber)
	require.Equal(t, 4, page.NextPageNumber)

	page, err = p.Page("5")
	require.NoError(t, err)
	require.Equal(t, 21, page.StartIndex)
	require.Equal(t, 22, page.EndIndex)
}

func TestPage_Invalid(t *testing.T) {
	p := New(22, 5)

	_, err := p.Page("abc")
	require.ErrorIs(t, err, ErrNotAnInteger)

	_, err = p.Page("1.5")
	require.ErrorIs(t, err, ErrNotAnInteger)

	_, err = p.Page("0")
	require.ErrorIs(t, err, ErrEmptyPage)

	_, err = p.Page("-1")
	require.ErrorIs(t, err, ErrEmptyPage)

	_, err = p.Page("6")
	require.ErrorIs(t, err, ErrEmptyPage)
}

func TestPage_EmptyResultHasFirstPage(t *testing.T) {
	p := New(0, 5)

	page, err := p.Page("1")
	require.NoError(t, err)
	require.Equal(t, 0, page.StartIndex)
	require.Equal(t, 0, page.EndIndex)

	_, err = p.Page("2")
	require.ErrorIs(t, err, ErrEmptyPage)
}
