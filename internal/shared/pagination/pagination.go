// Package pagination carries page requests and page metadata shared by list queries.
package pagination

// Params is a normalized page request. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps raw query values into a usable request.
func Normalize(page, limit, defaultLimit, maxLimit int) Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta describes where a page sits within the full result set.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewMeta computes page metadata for total matching records.
func NewMeta(p Params, total int64) Meta {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Items []T
	Meta  Meta
}

// Slice cuts an in-memory result set down to the requested page.
func Slice[T any](all []T, p Params) Page[T] {
	total := int64(len(all))
	start := p.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	items := make([]T, 0, end-start)
	items = append(items, all[start:end]...)
	return Page[T]{Items: items, Meta: NewMeta(p, total)}
}
