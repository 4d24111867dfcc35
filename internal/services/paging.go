package services

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PagedResult is an ordered finite window over a query. len(Items) never
// exceeds PageSize; TotalCount counts every matching record.
type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
}

func NewPagedResult[T any](items []T, total int64, page, pageSize int) *PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PagedResult[T]{Items: items, TotalCount: total, Page: page, PageSize: pageSize}
}

// NormalizePage clamps page to >= 1 and pageSize into
// [1, MaxPageSize], substituting the default for non-positive sizes so a
// caller can never request an unbounded window.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func pageOffset(page, pageSize int) int {
	return (page - 1) * pageSize
}
