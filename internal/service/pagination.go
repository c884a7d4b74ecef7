package service

// Page size bounds
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a 1-indexed page request
type Page struct {
	Number int
	Limit  int
}

// NewPage clamps a raw page request to sane bounds
func NewPage(number, limit int) Page {
	if number < 1 {
		number = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Page{Number: number, Limit: limit}
}

// Offset is the number of rows before this page
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Pagination describes where a page sits in the full result set
type Pagination struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// Paginate builds the pagination block for total matching rows
func (p Page) Paginate(total int64) Pagination {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Pagination{
		Total:       total,
		Page:        p.Number,
		Limit:       p.Limit,
		TotalPages:  totalPages,
		HasNextPage: p.Number < totalPages,
		HasPrevPage: p.Number > 1,
	}
}

// window returns the [start, end) bounds of this page over n in-memory items
func (p Page) window(n int) (int, int) {
	start := min(p.Offset(), n)
	end := min(start+p.Limit, n)
	return start, end
}
