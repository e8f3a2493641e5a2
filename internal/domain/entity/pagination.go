package entity

// Report listings page with ?page=&limit=. Out-of-range values are clamped, never rejected.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1
	DefaultPage     = 1
)

// PaginationParams is the page window bound from a report query string
type PaginationParams struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Validate clamps Page and Limit into range in place
func (p *PaginationParams) Validate() {
	if p.Page < DefaultPage {
		p.Page = DefaultPage
	}
	switch {
	case p.Limit < MinPageSize:
		p.Limit = DefaultPageSize
	case p.Limit > MaxPageSize:
		p.Limit = MaxPageSize
	}
}

// CalculateOffset is the number of rows skipped before this page
func (p PaginationParams) CalculateOffset() int {
	return (p.Page - 1) * p.Limit
}

// HasMore reports whether rows remain after the window [offset, offset+limit)
func HasMore(total int64, limit, offset int) bool {
	return int64(offset+limit) < total
}
