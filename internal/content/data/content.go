package data

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cdnstack/content-service/internal/content/biz"
	"github.com/cdnstack/content-service/internal/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StringArrayJSON stores a string slice as a JSONB column
type StringArrayJSON []string

func (j *StringArrayJSON) Scan(value interface{}) error {
	if value == nil {
		*j = []string{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

func (j StringArrayJSON) Value() (driver.Value, error) {
	if j == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(j)
}

// ContentPO is the database model for catalog entries
type ContentPO struct {
	ID            string          `gorm:"type:uuid;primarykey"`
	Title         string          `gorm:"size:500;not null"`
	Description   string          `gorm:"type:text"`
	ContentType   string          `gorm:"size:100;not null;index:idx_contents_content_type"`
	OwnerID       string          `gorm:"type:uuid;not null;index:idx_contents_owner_id"`
	IsPublic      bool            `gorm:"not null;default:true;index:idx_contents_is_public"`
	Tags          StringArrayJSON `gorm:"type:jsonb;not null;default:'[]'"`
	Metadata      string          `gorm:"type:text"`
	FilePath      string          `gorm:"size:1000"`
	FileSize      int64           `gorm:"not null;default:0"`
	MimeType      string          `gorm:"size:255"`
	DownloadCount int64           `gorm:"not null;default:0;index:idx_contents_download_count"`
	UploadDate    time.Time       `gorm:"not null;index:idx_contents_upload_date"`
	LastModified  time.Time       `gorm:"not null"`
}

func (ContentPO) TableName() string {
	return "contents"
}

// sortColumns maps external sort field names onto columns. The use case
// validates the field before it gets here.
var sortColumns = map[string]string{
	biz.SortByUploadDate:    "upload_date",
	biz.SortByLastModified:  "last_modified",
	biz.SortByTitle:         "title",
	biz.SortByDownloadCount: "download_count",
	biz.SortByFileSize:      "file_size",
}

// ContentRepo is the gorm-backed catalog store
type ContentRepo struct {
	db *database.DB
}

// NewContentRepo creates the catalog store
func NewContentRepo(db *database.DB) biz.ContentRepo {
	return &ContentRepo{db: db}
}

// Create persists a new entry, assigning the id and both timestamps
func (r *ContentRepo) Create(ctx context.Context, content *biz.Content) error {
	now := time.Now().UTC()
	po := toPO(content)
	po.ID = uuid.New().String()
	po.DownloadCount = 0
	po.UploadDate = now
	po.LastModified = now

	if err := r.db.WithContext(ctx).GetDB().Create(po).Error; err != nil {
		return err
	}

	content.ID = po.ID
	content.DownloadCount = 0
	content.UploadDate = po.UploadDate
	content.LastModified = po.LastModified
	return nil
}

// GetByID fetches one entry by id
func (r *ContentRepo) GetByID(ctx context.Context, id string) (*biz.Content, error) {
	var po ContentPO
	err := r.db.WithContext(ctx).GetDB().
		Where("id = ?", id).
		First(&po).Error

	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, biz.ErrContentNotFound
		}
		return nil, err
	}

	return toDomain(&po), nil
}

// Update replaces the mutable fields of an entry
func (r *ContentRepo) Update(ctx context.Context, content *biz.Content) error {
	updates := map[string]interface{}{
		"title":         content.Title,
		"description":   content.Description,
		"content_type":  content.ContentType,
		"is_public":     content.IsPublic,
		"tags":          StringArrayJSON(content.Tags),
		"metadata":      content.Metadata,
		"last_modified": content.LastModified,
	}

	result := r.db.WithContext(ctx).GetDB().
		Model(&ContentPO{}).
		Where("id = ?", content.ID).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return biz.ErrContentNotFound
	}

	return nil
}

// Delete removes an entry permanently
func (r *ContentRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).GetDB().
		Where("id = ?", id).
		Delete(&ContentPO{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return biz.ErrContentNotFound
	}

	return nil
}

// Scan returns one page of entries matching the predicate plus the total
// match count. Rows are ordered by the requested sort field with an id
// tie-break so the order is total.
func (r *ContentRepo) Scan(ctx context.Context, pred biz.Predicate, page biz.PageRequest) ([]*biz.Content, int64, error) {
	column, ok := sortColumns[page.SortBy]
	if !ok {
		return nil, 0, biz.ErrInvalidSortField
	}
	direction := "DESC"
	if page.SortDir == biz.SortAsc {
		direction = "ASC"
	}

	query := applyPredicate(r.db.WithContext(ctx).GetDB().Model(&ContentPO{}), pred)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var pos []ContentPO
	err := query.
		Order(fmt.Sprintf("%s %s, id ASC", column, direction)).
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&pos).Error
	if err != nil {
		return nil, 0, err
	}

	return toDomainList(pos), total, nil
}

// TopByDownloads returns the most downloaded entries, descending
func (r *ContentRepo) TopByDownloads(ctx context.Context, limit int) ([]*biz.Content, error) {
	return r.top(ctx, "download_count DESC, id ASC", limit)
}

// TopByUploadDate returns the most recently uploaded entries, descending
func (r *ContentRepo) TopByUploadDate(ctx context.Context, limit int) ([]*biz.Content, error) {
	return r.top(ctx, "upload_date DESC, id ASC", limit)
}

func (r *ContentRepo) top(ctx context.Context, order string, limit int) ([]*biz.Content, error) {
	var pos []ContentPO
	err := r.db.WithContext(ctx).GetDB().
		Order(order).
		Limit(limit).
		Find(&pos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(pos), nil
}

// IncrementDownloadCount atomically increments the counter and returns the
// updated entry. The increment rides a single UPDATE with RETURNING, so
// concurrent calls serialize at the row and no increment is lost.
func (r *ContentRepo) IncrementDownloadCount(ctx context.Context, id string) (*biz.Content, error) {
	var po ContentPO
	result := r.db.WithContext(ctx).GetDB().
		Model(&po).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("download_count", gorm.Expr("download_count + 1"))

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, biz.ErrContentNotFound
	}

	return toDomain(&po), nil
}

// BumpDownloadCount is the count-only variant of IncrementDownloadCount
func (r *ContentRepo) BumpDownloadCount(ctx context.Context, id string) (int64, error) {
	var po ContentPO
	result := r.db.WithContext(ctx).GetDB().
		Model(&po).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "download_count"}}}).
		Where("id = ?", id).
		Update("download_count", gorm.Expr("download_count + 1"))

	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		return 0, biz.ErrContentNotFound
	}

	return po.DownloadCount, nil
}

// applyPredicate translates the dispatcher's tagged variant into WHERE
// clauses. Exactly one case applies.
func applyPredicate(query *gorm.DB, pred biz.Predicate) *gorm.DB {
	switch pred.Kind {
	case biz.PredicateSearch:
		pattern := "%" + pred.Search + "%"
		query = query.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
		if pred.PublicOnly {
			query = query.Where("is_public = ?", true)
		}
		return query
	case biz.PredicateTypeAndOwner:
		return query.Where("content_type = ? AND owner_id = ?", pred.ContentType, pred.OwnerID)
	case biz.PredicateType:
		return query.Where("content_type = ?", pred.ContentType)
	case biz.PredicateOwner:
		return query.Where("owner_id = ?", pred.OwnerID)
	default:
		return query.Where("is_public = ?", true)
	}
}

func toPO(content *biz.Content) *ContentPO {
	return &ContentPO{
		ID:            content.ID,
		Title:         content.Title,
		Description:   content.Description,
		ContentType:   content.ContentType,
		OwnerID:       content.OwnerID,
		IsPublic:      content.IsPublic,
		Tags:          content.Tags,
		Metadata:      content.Metadata,
		FilePath:      content.FilePath,
		FileSize:      content.FileSize,
		MimeType:      content.MimeType,
		DownloadCount: content.DownloadCount,
		UploadDate:    content.UploadDate,
		LastModified:  content.LastModified,
	}
}

func toDomain(po *ContentPO) *biz.Content {
	return &biz.Content{
		ID:            po.ID,
		Title:         po.Title,
		Description:   po.Description,
		ContentType:   po.ContentType,
		OwnerID:       po.OwnerID,
		IsPublic:      po.IsPublic,
		Tags:          po.Tags,
		Metadata:      po.Metadata,
		FilePath:      po.FilePath,
		FileSize:      po.FileSize,
		MimeType:      po.MimeType,
		DownloadCount: po.DownloadCount,
		UploadDate:    po.UploadDate,
		LastModified:  po.LastModified,
	}
}

func toDomainList(pos []ContentPO) []*biz.Content {
	items := make([]*biz.Content, len(pos))
	for i := range pos {
		items[i] = toDomain(&pos[i])
	}
	return items
}
