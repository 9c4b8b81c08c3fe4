package biz

import "errors"

// Sentinel errors surfaced by the content use case. The service layer maps
// these onto HTTP responses; everything else is treated as an internal error.
var (
	ErrContentNotFound     = errors.New("content not found")
	ErrTitleRequired       = errors.New("content title is required")
	ErrContentTypeRequired = errors.New("content type is required")
	ErrOwnerRequired       = errors.New("owner id is required")
	ErrSearchQueryRequired = errors.New("search query is required")
	ErrInvalidPagination   = errors.New("page must be >= 0 and size must be between 1 and 100")
	ErrInvalidSortField    = errors.New("unsupported sort field")
	ErrInvalidSortDir      = errors.New("sort direction must be asc or desc")
	ErrInvalidLimit        = errors.New("limit must be a positive integer")
)
