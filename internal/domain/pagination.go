package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based).
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// HasNext reports whether rows exist past the current page.
func (p PaginationParams) HasNext(total int) bool {
	return p.Offset()+p.PageSize < total
}

// HasPrevious reports whether the current page is past the first.
func (p PaginationParams) HasPrevious() bool {
	return p.Page > 1
}
