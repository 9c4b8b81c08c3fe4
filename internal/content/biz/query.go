package biz

// Sort fields accepted by listing operations. These are the external names;
// the data layer maps them onto columns.
const (
	SortByUploadDate    = "uploadDate"
	SortByLastModified  = "lastModified"
	SortByTitle         = "title"
	SortByDownloadCount = "downloadCount"
	SortByFileSize      = "fileSize"
)

// SortDirection is the ordering direction for listing operations
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// MaxPageSize bounds a single page of results
const MaxPageSize = 100

var validSortFields = map[string]struct{}{
	SortByUploadDate:    {},
	SortByLastModified:  {},
	SortByTitle:         {},
	SortByDownloadCount: {},
	SortByFileSize:      {},
}

// PageRequest carries pagination and sorting parameters. Page indexes are
// zero-based.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir SortDirection
}

// Normalize applies defaults and validates the request. It must be called
// before the request reaches the store.
func (p *PageRequest) Normalize() error {
	if p.Size == 0 {
		p.Size = 20
	}
	if p.Page < 0 || p.Size < 1 || p.Size > MaxPageSize {
		return ErrInvalidPagination
	}

	if p.SortBy == "" {
		p.SortBy = SortByUploadDate
	}
	if _, ok := validSortFields[p.SortBy]; !ok {
		return ErrInvalidSortField
	}

	if p.SortDir == "" {
		p.SortDir = SortDesc
	}
	if p.SortDir != SortAsc && p.SortDir != SortDesc {
		return ErrInvalidSortDir
	}

	return nil
}

// Offset returns the row offset for this page
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// PredicateKind tags the scan shape selected by the dispatcher
type PredicateKind int

const (
	// PredicateSearch matches the search text against title or description,
	// case-insensitively. PublicOnly is set when no owner id accompanied
	// the call.
	PredicateSearch PredicateKind = iota
	// PredicateTypeAndOwner matches content type and owner exactly.
	PredicateTypeAndOwner
	// PredicateType matches content type exactly, all visibilities.
	PredicateType
	// PredicateOwner matches owner exactly, all visibilities.
	PredicateOwner
	// PredicatePublic matches all public records.
	PredicatePublic
)

// Predicate is the tagged variant handed to the store's scan. Exactly one
// kind applies per call.
type Predicate struct {
	Kind        PredicateKind
	Search      string
	ContentType string
	OwnerID     string
	PublicOnly  bool
}

// ResolvePredicate selects exactly one scan shape for the given optional
// filters. The precedence order is a public contract: search wins over
// everything (an owner id supplied alongside search is ignored), a combined
// type+owner filter wins over either alone, and no filters at all means
// public records only.
func ResolvePredicate(search, contentType, ownerID string) Predicate {
	switch {
	case search != "":
		return Predicate{
			Kind:       PredicateSearch,
			Search:     search,
			PublicOnly: ownerID == "",
		}
	case contentType != "" && ownerID != "":
		return Predicate{
			Kind:        PredicateTypeAndOwner,
			ContentType: contentType,
			OwnerID:     ownerID,
		}
	case contentType != "":
		return Predicate{
			Kind:        PredicateType,
			ContentType: contentType,
		}
	case ownerID != "":
		return Predicate{
			Kind:    PredicateOwner,
			OwnerID: ownerID,
		}
	default:
		return Predicate{
			Kind:       PredicatePublic,
			PublicOnly: true,
		}
	}
}
