package entity

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

// Page is an offset/limit window over a list ordered by created_at DESC.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Pagination is echoed to clients next to list results. Total counts every
// row that matches the filter, not just the current page.
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func NewPagination(total int, page Page) Pagination {
	return Pagination{Total: total, Limit: page.Limit, Offset: page.Offset}
}
