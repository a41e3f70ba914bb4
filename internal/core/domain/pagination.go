package domain

import "math"

// DefaultPageSize is the fixed number of tasks per listing page.
const DefaultPageSize = 10

// MaxPage is the highest page whose offset still fits in an int.
const MaxPage = math.MaxInt / DefaultPageSize

type PageRequest struct {
	Page    int
	PerPage int
}

// NewPageRequest builds a request for page using DefaultPageSize. Pages below
// 1 are treated as the first page and pages above MaxPage as MaxPage.
func NewPageRequest(page int) PageRequest {
	switch {
	case page < 1:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}
	return PageRequest{Page: page, PerPage: DefaultPageSize}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

type TaskPage struct {
	Items   []Task
	Page    int
	PerPage int
	Total   int
}

// LastPage is never lower than 1, even for an empty listing.
func (p TaskPage) LastPage() int {
	if p.PerPage <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}
