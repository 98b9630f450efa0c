package dto

// PageQuery 分页参数
type PageQuery struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// Normalize 修正非法分页参数
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPerPage
	}
	if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}
}

// Offset 数据库偏移量
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// Page 分页结果
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	LastPage int   `json:"last_page"`
}

// NewPage 构造分页结果
func NewPage[T any](items []T, total int64, q PageQuery) Page[T] {
	if items == nil {
		items = []T{}
	}
	last := 1
	if q.PerPage > 0 && total > 0 {
		last = int((total + int64(q.PerPage) - 1) / int64(q.PerPage))
	}
	return Page[T]{
		Items:    items,
		Total:    total,
		Page:     q.Page,
		PerPage:  q.PerPage,
		LastPage: last,
	}
}
