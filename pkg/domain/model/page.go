package model

// Page is one page of an ordered list
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// TotalPages returns max(1, ceil(count/size)). A non-positive size is
// treated as 1.
func TotalPages(count, size int) int {
	if size < 1 {
		size = 1
	}
	if count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// ClampPage moves page into [1, TotalPages(count, size)]
func ClampPage(page, count, size int) int {
	total := TotalPages(count, size)
	switch {
	case page < 1:
		return 1
	case page > total:
		return total
	default:
		return page
	}
}

// Paginate returns the clamped page of items in source order. The returned
// Items slice is a copy, so callers may append to it freely.
func Paginate[T any](items []T, page, size int) *Page[T] {
	if size < 1 {
		size = 1
	}
	page = ClampPage(page, len(items), size)
	total := TotalPages(len(items), size)

	start := (page - 1) * size
	end := min(start+size, len(items))

	visible := make([]T, 0, end-start)
	visible = append(visible, items[start:end]...)

	return &Page[T]{
		Items:      visible,
		Page:       page,
		PageSize:   size,
		TotalItems: len(items),
		TotalPages: total,
		HasPrev:    page > 1,
		HasNext:    page < total,
	}
}

// Prev returns the previous page number; it stays at 1 on the first page
func (x *Page[T]) Prev() int {
	if !x.HasPrev {
		return x.Page
	}
	return x.Page - 1
}

// Next returns the next page number; it stays at TotalPages on the last page
func (x *Page[T]) Next() int {
	if !x.HasNext {
		return x.Page
	}
	return x.Page + 1
}
