package service

import (
	"time"

	"github.com/cdnstack/content-service/internal/content/biz"
)

// UpdateContentRequest replaces the mutable fields of an entry in full
type UpdateContentRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=500"`
	Description string   `json:"description"`
	ContentType string   `json:"contentType" binding:"required,min=1,max=100"`
	IsPublic    *bool    `json:"isPublic"`
	Tags        []string `json:"tags"`
	Metadata    string   `json:"metadata"`
}

// PageQuery carries the paging and sorting query parameters
type PageQuery struct {
	Page    int    `form:"page" binding:"omitempty,min=0"`
	Size    int    `form:"size" binding:"omitempty,min=1,max=100"`
	SortBy  string `form:"sortBy"`
	SortDir string `form:"sortDir"`
}

// ListContentQuery carries the optional filters plus paging for listing
type ListContentQuery struct {
	Search      string `form:"search"`
	ContentType string `form:"contentType"`
	OwnerID     string `form:"ownerId"`
	PageQuery
}

// ContentResponse is the catalog entry as returned to clients
type ContentResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ContentType   string    `json:"contentType"`
	OwnerID       string    `json:"ownerId"`
	IsPublic      bool      `json:"isPublic"`
	Tags          []string  `json:"tags"`
	Metadata      string    `json:"metadata,omitempty"`
	FilePath      string    `json:"filePath,omitempty"`
	FileSize      int64     `json:"fileSize"`
	MimeType      string    `json:"mimeType,omitempty"`
	DownloadCount int64     `json:"downloadCount"`
	UploadDate    time.Time `json:"uploadDate"`
	LastModified  time.Time `json:"lastModified"`
}

// PageResponse is the page envelope for list and search results
type PageResponse struct {
	Content       []*ContentResponse `json:"content"`
	Page          int                `json:"page"`
	Size          int                `json:"size"`
	TotalElements int64              `json:"totalElements"`
	TotalPages    int                `json:"totalPages"`
}

// DownloadResponse carries the resolved download link
type DownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

func toContentResponse(content *biz.Content) *ContentResponse {
	tags := content.Tags
	if tags == nil {
		tags = []string{}
	}

	return &ContentResponse{
		ID:            content.ID,
		Title:         content.Title,
		Description:   content.Description,
		ContentType:   content.ContentType,
		OwnerID:       content.OwnerID,
		IsPublic:      content.IsPublic,
		Tags:          tags,
		Metadata:      content.Metadata,
		FilePath:      content.FilePath,
		FileSize:      content.FileSize,
		MimeType:      content.MimeType,
		DownloadCount: content.DownloadCount,
		UploadDate:    content.UploadDate,
		LastModified:  content.LastModified,
	}
}

func toContentResponseList(items []*biz.Content) []*ContentResponse {
	out := make([]*ContentResponse, len(items))
	for i, item := range items {
		out[i] = toContentResponse(item)
	}
	return out
}

func toPageResponse(page *biz.ContentPage) *PageResponse {
	totalPages := 0
	if page.Size > 0 {
		totalPages = int((page.TotalElements + int64(page.Size) - 1) / int64(page.Size))
	}

	return &PageResponse{
		Content:       toContentResponseList(page.Items),
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    totalPages,
	}
}
