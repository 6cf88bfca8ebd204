package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginate_EmptyInput(t *testing.T) {
	for _, n := range []int{1, 2, 50} {
		p := Paginate([]int{}, n, 10)
		assert.Empty(t, p.Items)
		assert.NotNil(t, p.Items)
		assert.Equal(t, 0, p.TotalCount)
		assert.Equal(t, 1, p.TotalPages)
		assert.Equal(t, 1, p.PageNumber)
	}

	assert.Equal(t, 1, EmptyPage[int](5).TotalPages)
}

func TestPaginate_Clamping(t *testing.T) {
	records := seq(23)

	tests := []struct {
		name     string
		page     int
		size     int
		wantPage int
		wantLen  int
		wantSize int
	}{
		{"first", 1, 10, 1, 10, 10},
		{"last partial", 3, 10, 3, 3, 10},
		{"beyond last", 99, 10, 3, 3, 10},
		{"zero page", 0, 10, 1, 10, 10},
		{"negative page", -4, 10, 1, 10, 10},
		{"default size", 1, 0, 1, 10, DefaultPageSize},
		{"size larger than total", 1, 100, 1, 23, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(records, tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p.PageNumber)
			assert.Len(t, p.Items, tt.wantLen)
			assert.Equal(t, tt.wantSize, p.PageSize)
			assert.LessOrEqual(t, len(p.Items), p.PageSize)
			assert.Equal(t, 23, p.TotalCount)
		})
	}
}

func TestPaginate_PagesCoverInput(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for size := 1; size <= 12; size++ {
			records := seq(total)
			pages := TotalPages(total, size)

			var joined []int
			for n := 1; n <= pages; n++ {
				joined = append(joined, Paginate(records, n, size).Items...)
			}

			assert.Equal(t, records, joined, "total=%d size=%d", total, size)
		}
	}
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	records := seq(5)
	p := Paginate(records, 1, 3)
	p.Items[0] = 42
	assert.Equal(t, 0, records[0])
}

func TestPage_Navigation(t *testing.T) {
	p := Paginate(seq(25), 2, 10)
	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrevious())

	last := Paginate(seq(25), 3, 10)
	assert.False(t, last.HasNext())

	first := Paginate(seq(25), 1, 10)
	assert.False(t, first.HasPrevious())
}
