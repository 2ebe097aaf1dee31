package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeItems(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginateSplitsFullAndTail(t *testing.T) {
	// 页大小 N，N+2 条数据：第一页 N 条，第二页 2 条
	items := makeItems(DefaultPageSize + 2)

	first := Paginate(items, "1", DefaultPageSize)
	assert.Len(t, first.Items, DefaultPageSize)
	assert.Equal(t, 2, first.TotalPages)
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)

	second := Paginate(items, "2", DefaultPageSize)
	assert.Len(t, second.Items, 2)
	assert.True(t, second.HasPrev)
	assert.False(t, second.HasNext)
	assert.Equal(t, DefaultPageSize, second.Items[0])
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	// 越界页码收敛到最后一页而不是报错
	items := makeItems(25)

	page := Paginate(items, "9999", 10)
	assert.Equal(t, 3, page.Number)
	assert.Len(t, page.Items, 5)
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)
}

func TestPaginateDefaultsToFirstPage(t *testing.T) {
	items := makeItems(15)

	for _, param := range []string{"", "abc", "0", "-3"} {
		page := Paginate(items, param, 10)
		assert.Equal(t, 1, page.Number, "param=%q", param)
		assert.Len(t, page.Items, 10)
	}
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]int{}, "1", 10)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasPrev)
	assert.False(t, page.HasNext)
}
