package pkg

import "strconv"

const DefaultPageSize = 10

// Page 分页对象：一页数据加导航元信息。
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

func (p Page[T]) Prev() int { return p.Number - 1 }
func (p Page[T]) Next() int { return p.Number + 1 }

// Paginate 按固定页大小切分有序序列。
// 页码缺失或非法回到第一页，越界收敛到最后一页，不报错。
func Paginate[T any](items []T, pageParam string, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := (len(items) + size - 1) / size
	if total == 0 {
		total = 1
	}
	number, err := strconv.Atoi(pageParam)
	if err != nil || number < 1 {
		number = 1
	}
	if number > total {
		number = total
	}
	start := (number - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{
		Items:      items[start:end],
		Number:     number,
		TotalPages: total,
		HasPrev:    number > 1,
		HasNext:    number < total,
	}
}
