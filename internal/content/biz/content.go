package biz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cdnstack/content-service/internal/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultRankingLimit is used by the popular/recent views when the caller
// does not specify a limit.
const DefaultRankingLimit = 10

// DownloadURLExpiry bounds the lifetime of presigned download URLs.
const DownloadURLExpiry = 15 * time.Minute

// Content is the catalog entry describing an uploaded asset's metadata.
type Content struct {
	ID          string
	Title       string
	Description string
	ContentType string // free-form category tag, not a MIME type
	OwnerID     string
	IsPublic    bool
	Tags        []string
	Metadata    string // opaque, caller-defined, never interpreted

	FilePath string
	FileSize int64
	MimeType string

	DownloadCount int64
	UploadDate    time.Time
	LastModified  time.Time
}

// ContentPage is a page of catalog entries with the total match count.
type ContentPage struct {
	Items         []*Content
	Page          int
	Size          int
	TotalElements int64
}

// ContentRepo is the persistence contract for catalog entries.
type ContentRepo interface {
	// Create persists the record, assigning a fresh id and both timestamps.
	Create(ctx context.Context, content *Content) error
	GetByID(ctx context.Context, id string) (*Content, error)
	// Update replaces the mutable fields and persists the given LastModified.
	Update(ctx context.Context, content *Content) error
	Delete(ctx context.Context, id string) error
	// Scan returns one page of records matching the predicate plus the
	// total match count.
	Scan(ctx context.Context, pred Predicate, page PageRequest) ([]*Content, int64, error)
	TopByDownloads(ctx context.Context, limit int) ([]*Content, error)
	TopByUploadDate(ctx context.Context, limit int) ([]*Content, error)
	// IncrementDownloadCount atomically increments the counter and returns
	// the updated record. Concurrent calls for the same id must not lose
	// increments.
	IncrementDownloadCount(ctx context.Context, id string) (*Content, error)
	// BumpDownloadCount is the count-only variant used when the record
	// fields are already at hand.
	BumpDownloadCount(ctx context.Context, id string) (int64, error)
}

// ContentCache is the lookup cache keyed by record id. Implementations must
// be safe for concurrent use and must swallow backend failures: a failed Get
// reports a miss, failed Put/Invalidate are logged internally. The cache is
// never authoritative.
type ContentCache interface {
	Get(ctx context.Context, id string) (*Content, bool)
	Put(ctx context.Context, id string, content *Content)
	Invalidate(ctx context.Context, id string)
}

// FileStorage is the upload side-channel storing the actual bytes. The
// catalog only records the resulting path, size and MIME type.
type FileStorage interface {
	// Store writes the object and returns the stored object path.
	Store(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, path string) error
	DownloadURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

// FileUpload describes a file accompanying a create request.
type FileUpload struct {
	Filename string
	Size     int64
	MimeType string
	Reader   io.Reader
}

// CreateContentRequest carries the fields for a new catalog entry.
type CreateContentRequest struct {
	Title       string
	Description string
	ContentType string
	OwnerID     string
	IsPublic    *bool // nil defaults to true
	Tags        []string
	Metadata    string
	File        *FileUpload // optional
}

// UpdateContentRequest replaces the mutable fields of an entry in full.
type UpdateContentRequest struct {
	Title       string
	Description string
	ContentType string
	IsPublic    *bool // nil defaults to true
	Tags        []string
	Metadata    string
}

// ListContentRequest carries the optional filters plus paging for listing.
type ListContentRequest struct {
	Search      string
	ContentType string
	OwnerID     string
	Page        PageRequest
}

// ContentUseCase is the catalog facade: it owns the read-that-mutates
// contract for single-item fetch and the cache invalidation discipline on
// every write path.
type ContentUseCase struct {
	repo    ContentRepo
	cache   ContentCache
	storage FileStorage // nil when object storage is not configured
	logger  *logger.Logger
}

// NewContentUseCase creates the catalog facade. storage may be nil.
func NewContentUseCase(repo ContentRepo, cache ContentCache, storage FileStorage, log *logger.Logger) *ContentUseCase {
	return &ContentUseCase{
		repo:    repo,
		cache:   cache,
		storage: storage,
		logger:  log,
	}
}

// CreateContent validates and persists a new catalog entry. When a file
// accompanies the request and object storage is configured, the bytes are
// stored first and the resulting path recorded; without storage the
// conventional uploads path is recorded as-is.
func (uc *ContentUseCase) CreateContent(ctx context.Context, req *CreateContentRequest) (*Content, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	content := &Content{
		Title:       req.Title,
		Description: req.Description,
		ContentType: req.ContentType,
		OwnerID:     req.OwnerID,
		IsPublic:    req.IsPublic == nil || *req.IsPublic,
		Tags:        req.Tags,
		Metadata:    req.Metadata,
	}

	if req.File != nil {
		if err := uc.attachFile(ctx, content, req.File); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.Create(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}

	return content, nil
}

// attachFile stores the uploaded bytes (when storage is configured) and
// records the file triple on the entry.
func (uc *ContentUseCase) attachFile(ctx context.Context, content *Content, file *FileUpload) error {
	content.FileSize = file.Size
	content.MimeType = file.MimeType

	if uc.storage == nil {
		content.FilePath = "/uploads/" + file.Filename
		return nil
	}

	objectName := fmt.Sprintf("uploads/%s_%s", uuid.New().String(), file.Filename)
	path, err := uc.storage.Store(ctx, objectName, file.Reader, file.Size, file.MimeType)
	if err != nil {
		return fmt.Errorf("failed to store uploaded file: %w", err)
	}
	content.FilePath = path
	return nil
}

// GetContent returns the entry and increments its download counter. The
// increment is applied atomically at the store on every successful call,
// cache hit or miss, so concurrent fetches never lose an increment. The
// cache entry is refreshed (invalidate, then put) before returning. A
// counter increment that commits after the caller's context is cancelled
// stays committed; the caller simply does not observe the result.
func (uc *ContentUseCase) GetContent(ctx context.Context, id string) (*Content, error) {
	if id == "" {
		return nil, ErrContentNotFound
	}

	if cached, ok := uc.cache.Get(ctx, id); ok {
		count, err := uc.repo.BumpDownloadCount(ctx, id)
		if err != nil {
			if errors.Is(err, ErrContentNotFound) {
				// Record was deleted underneath a stale cache entry.
				uc.cache.Invalidate(ctx, id)
			}
			return nil, err
		}

		hit := *cached
		hit.DownloadCount = count
		uc.refreshCache(ctx, id, &hit)
		return &hit, nil
	}

	content, err := uc.repo.IncrementDownloadCount(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.refreshCache(ctx, id, content)
	return content, nil
}

// ListContent resolves the filter combination to exactly one scan shape and
// returns the matching page.
func (uc *ContentUseCase) ListContent(ctx context.Context, req *ListContentRequest) (*ContentPage, error) {
	if err := req.Page.Normalize(); err != nil {
		return nil, err
	}

	pred := ResolvePredicate(req.Search, req.ContentType, req.OwnerID)

	items, total, err := uc.repo.Scan(ctx, pred, req.Page)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	return &ContentPage{
		Items:         items,
		Page:          req.Page.Page,
		Size:          req.Page.Size,
		TotalElements: total,
	}, nil
}

// SearchContent is the dedicated search view: case-insensitive substring
// match on title or description, public records only.
func (uc *ContentUseCase) SearchContent(ctx context.Context, query string, page PageRequest) (*ContentPage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrSearchQueryRequired
	}

	return uc.ListContent(ctx, &ListContentRequest{
		Search: query,
		Page:   page,
	})
}

// OwnerContent lists all records of one owner, any visibility.
func (uc *ContentUseCase) OwnerContent(ctx context.Context, ownerID string, page PageRequest) (*ContentPage, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}

	return uc.ListContent(ctx, &ListContentRequest{
		OwnerID: ownerID,
		Page:    page,
	})
}

// UpdateContent replaces the mutable fields in full, bumps the modification
// time and refreshes the cache entry. Id, owner, upload time, download count
// and the file triple are immutable.
func (uc *ContentUseCase) UpdateContent(ctx context.Context, id string, req *UpdateContentRequest) (*Content, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	content, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	content.Title = req.Title
	content.Description = req.Description
	content.ContentType = req.ContentType
	content.IsPublic = req.IsPublic == nil || *req.IsPublic
	content.Tags = req.Tags
	content.Metadata = req.Metadata
	content.LastModified = time.Now().UTC()

	if err := uc.repo.Update(ctx, content); err != nil {
		return nil, err
	}

	uc.refreshCache(ctx, id, content)
	return content, nil
}

// DeleteContent removes the entry, its stored object if one exists, and the
// cache entry. Deletion is destructive; there is no tombstone state.
func (uc *ContentUseCase) DeleteContent(ctx context.Context, id string) error {
	content, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	if uc.storage != nil && isStoredObject(content.FilePath) {
		if err := uc.storage.Remove(ctx, content.FilePath); err != nil {
			uc.logger.Warn("failed to remove stored object",
				zap.String("content_id", id),
				zap.String("path", content.FilePath),
				zap.Error(err),
			)
		}
	}

	uc.cache.Invalidate(ctx, id)
	return nil
}

// DownloadURL returns a time-limited presigned URL when the entry has a
// stored object, or the API download path otherwise.
func (uc *ContentUseCase) DownloadURL(ctx context.Context, id string) (string, error) {
	content, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if uc.storage != nil && isStoredObject(content.FilePath) {
		url, err := uc.storage.DownloadURL(ctx, content.FilePath, DownloadURLExpiry)
		if err != nil {
			return "", fmt.Errorf("failed to presign download url: %w", err)
		}
		return url, nil
	}

	return fmt.Sprintf("/api/v1/content/%s/download", content.ID), nil
}

// PopularContent returns the limit most downloaded records, uncached.
func (uc *ContentUseCase) PopularContent(ctx context.Context, limit int) ([]*Content, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	items, err := uc.repo.TopByDownloads(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get popular content: %w", err)
	}
	return items, nil
}

// RecentContent returns the limit most recently uploaded records, uncached.
func (uc *ContentUseCase) RecentContent(ctx context.Context, limit int) ([]*Content, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	items, err := uc.repo.TopByUploadDate(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent content: %w", err)
	}
	return items, nil
}

// refreshCache applies the write-path invalidation discipline: invalidate
// first, then repopulate, never the reverse order.
func (uc *ContentUseCase) refreshCache(ctx context.Context, id string, content *Content) {
	uc.cache.Invalidate(ctx, id)
	uc.cache.Put(ctx, id, content)
}

// isStoredObject reports whether the path refers to an object in the
// configured storage backend. Paths recorded without a storage backend are
// rooted ("/uploads/..."); object keys are not.
func isStoredObject(path string) bool {
	return path != "" && !strings.HasPrefix(path, "/")
}

// Validate checks the create request fields
func (r *CreateContentRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(r.ContentType) == "" {
		return ErrContentTypeRequired
	}
	if strings.TrimSpace(r.OwnerID) == "" {
		return ErrOwnerRequired
	}
	return nil
}

// Validate checks the update request fields
func (r *UpdateContentRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(r.ContentType) == "" {
		return ErrContentTypeRequired
	}
	return nil
}
