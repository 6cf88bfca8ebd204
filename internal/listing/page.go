package listing

// DefaultPageSize is used when a caller asks for a page size below one.
const DefaultPageSize = 10

// Page is one bounded slice of a larger ordered collection.
type Page[T any] struct {
	Items      []T `json:"items"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// EmptyPage is the "page 1 of 1, no rows" state.
func EmptyPage[T any](pageSize int) Page[T] {
	return Paginate[T](nil, 1, pageSize)
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool {
	return p.PageNumber < p.TotalPages
}

// HasPrevious reports whether a page precedes this one.
func (p Page[T]) HasPrevious() bool {
	return p.PageNumber > 1
}

// TotalPages returns ceil(total/size), and 1 for an empty collection.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate slices out page pageNumber of records. Out-of-range page numbers
// are clamped into [1, TotalPages], so it never panics.
func Paginate[T any](records []T, pageNumber, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(records)
	pages := TotalPages(total, pageSize)

	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > pages {
		pageNumber = pages
	}

	start := (pageNumber - 1) * pageSize
	end := min(start+pageSize, total)

	items := make([]T, 0, end-start)
	items = append(items, records[start:end]...)

	return Page[T]{
		Items:      items,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: pages,
	}
}
