package constants

import "math"

// Pagination Limits (as integers for validation)
const (
	MinPage         = 1
	MinLimit        = 1
	MaxLimit        = 100
	DefaultPageInt  = 1
	DefaultLimitInt = 10

	// MaxPage keeps (page-1)*MaxLimit within int.
	MaxPage = math.MaxInt / MaxLimit
)

// PaginationParams is a normalized 1-based page request.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int // (page - 1) * limit
}

// NewPaginationParams normalizes page and limit coming from a request body.
// Zero or negative values fall back to the defaults. Limit is capped at
// MaxLimit and page at MaxPage.
func NewPaginationParams(page, limit int) PaginationParams {
	if page < MinPage {
		page = DefaultPageInt
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < MinLimit {
		limit = DefaultLimitInt
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// TotalPages returns ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
