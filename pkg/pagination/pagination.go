package pagination

import (
	"math"
)

// Allowed page sizes offered by the dashboard tables.
var PerPageOptions = []int{5, 10, 25}

const (
	DefaultPerPage = 5
	MaxPerPage     = 100
)

// Pagination describes the page that was returned
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams represents input parameters for pagination.
// Page is 0-based, matching the dashboard table component.
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// DefaultPagination returns default pagination values
func DefaultPagination() *PaginationParams {
	return &PaginationParams{
		Page:    0,
		PerPage: DefaultPerPage,
	}
}

// Validate ensures pagination parameters are within valid ranges
func (p *PaginationParams) Validate() {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

// Offset returns the index of the first row on the page
func (p *PaginationParams) Offset() int {
	return p.Page * p.PerPage
}

// Slice returns rows [page*perPage, page*perPage+perPage) clamped to the input.
func Slice[T any](rows []T, p *PaginationParams) []T {
	start := p.Offset()
	if start >= len(rows) {
		return []T{}
	}
	end := start + p.PerPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// EmptyRows is the number of filler rows needed to keep a page at a fixed
// height: perPage minus the rows actually present on that page.
func EmptyRows(total int, p *PaginationParams) int {
	present := total - p.Offset()
	if present < 0 {
		present = 0
	}
	if present > p.PerPage {
		present = p.PerPage
	}
	return p.PerPage - present
}

// NewPagination creates a new Pagination response
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page+1 < totalPages,
		HasPrev:     page > 0,
	}
}

// PaginatedResult represents a paginated result with items and pagination info
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
	EmptyRows  int         `json:"empty_rows"`
}

// Paginate slices rows for the requested page and fills in the page metadata.
func Paginate[T any](rows []T, p *PaginationParams) *PaginatedResult[T] {
	p.Validate()
	return &PaginatedResult[T]{
		Items:      Slice(rows, p),
		Pagination: NewPagination(p.Page, p.PerPage, int64(len(rows))),
		EmptyRows:  EmptyRows(len(rows), p),
	}
}
