package service

import (
	"errors"
	"strconv"

	"github.com/cdnstack/content-service/internal/content/biz"
	"github.com/cdnstack/content-service/internal/pkg/logger"
	"github.com/cdnstack/content-service/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContentService exposes the catalog over HTTP
type ContentService struct {
	uc     *biz.ContentUseCase
	logger *logger.Logger
}

// NewContentService creates the content HTTP service
func NewContentService(uc *biz.ContentUseCase, logger *logger.Logger) *ContentService {
	return &ContentService{
		uc:     uc,
		logger: logger,
	}
}

// RegisterRoutes mounts the content endpoints on the API group
func (s *ContentService) RegisterRoutes(r *gin.RouterGroup) {
	content := r.Group("/content")
	{
		content.POST("/upload", s.Upload)
		content.GET("", s.List)
		content.GET("/search", s.Search)
		content.GET("/popular", s.Popular)
		content.GET("/recent", s.Recent)
		content.GET("/user/:ownerId", s.OwnerContent)
		content.GET("/:id", s.Get)
		content.PUT("/:id", s.Update)
		content.DELETE("/:id", s.Delete)
		content.POST("/:id/download", s.Download)
	}
}

// Upload creates a catalog entry from a multipart form, storing the
// optional file in object storage
func (s *ContentService) Upload(c *gin.Context) {
	req := &biz.CreateContentRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		ContentType: c.PostForm("contentType"),
		OwnerID:     c.PostForm("ownerId"),
		Tags:        c.PostFormArray("tags"),
		Metadata:    c.PostForm("metadata"),
	}

	if raw, ok := c.GetPostForm("isPublic"); ok {
		isPublic, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c, "isPublic must be a boolean")
			return
		}
		req.IsPublic = &isPublic
	}

	header, err := c.FormFile("file")
	if err == nil {
		file, err := header.Open()
		if err != nil {
			s.logger.Error("failed to open uploaded file", zap.Error(err))
			response.InternalError(c, "failed to read uploaded file")
			return
		}
		defer file.Close()

		req.File = &biz.FileUpload{
			Filename: header.Filename,
			Size:     header.Size,
			MimeType: header.Header.Get("Content-Type"),
			Reader:   file,
		}
	}

	content, err := s.uc.CreateContent(c.Request.Context(), req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Created(c, toContentResponse(content))
}

// Get returns one entry and counts the fetch as a download
func (s *ContentService) Get(c *gin.Context) {
	content, err := s.uc.GetContent(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toContentResponse(content))
}

// List returns a filtered, sorted page of entries
func (s *ContentService) List(c *gin.Context) {
	var query ListContentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	page, err := s.uc.ListContent(c.Request.Context(), &biz.ListContentRequest{
		Search:      query.Search,
		ContentType: query.ContentType,
		OwnerID:     query.OwnerID,
		Page:        toPageRequest(query.PageQuery),
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toPageResponse(page))
}

// Search returns public entries matching the query string
func (s *ContentService) Search(c *gin.Context) {
	var paging PageQuery
	if err := c.ShouldBindQuery(&paging); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	page, err := s.uc.SearchContent(c.Request.Context(), c.Query("query"), toPageRequest(paging))
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toPageResponse(page))
}

// Popular returns the most downloaded entries
func (s *ContentService) Popular(c *gin.Context) {
	limit, err := limitParam(c)
	if err != nil {
		response.BadRequest(c, "limit must be a positive integer")
		return
	}

	items, err := s.uc.PopularContent(c.Request.Context(), limit)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toContentResponseList(items))
}

// Recent returns the most recently uploaded entries
func (s *ContentService) Recent(c *gin.Context) {
	limit, err := limitParam(c)
	if err != nil {
		response.BadRequest(c, "limit must be a positive integer")
		return
	}

	items, err := s.uc.RecentContent(c.Request.Context(), limit)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toContentResponseList(items))
}

// OwnerContent returns one owner's entries regardless of visibility
func (s *ContentService) OwnerContent(c *gin.Context) {
	var paging PageQuery
	if err := c.ShouldBindQuery(&paging); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	page, err := s.uc.OwnerContent(c.Request.Context(), c.Param("ownerId"), toPageRequest(paging))
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toPageResponse(page))
}

// Update replaces the mutable fields of an entry
func (s *ContentService) Update(c *gin.Context) {
	var req UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	content, err := s.uc.UpdateContent(c.Request.Context(), c.Param("id"), &biz.UpdateContentRequest{
		Title:       req.Title,
		Description: req.Description,
		ContentType: req.ContentType,
		IsPublic:    req.IsPublic,
		Tags:        req.Tags,
		Metadata:    req.Metadata,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toContentResponse(content))
}

// Delete removes an entry and its stored file
func (s *ContentService) Delete(c *gin.Context) {
	if err := s.uc.DeleteContent(c.Request.Context(), c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// Download resolves a download link for the entry
func (s *ContentService) Download(c *gin.Context) {
	url, err := s.uc.DownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, &DownloadResponse{DownloadURL: url})
}

func (s *ContentService) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, biz.ErrContentNotFound):
		response.NotFound(c, "content not found")
	case errors.Is(err, biz.ErrTitleRequired):
		response.BadRequest(c, "title is required")
	case errors.Is(err, biz.ErrContentTypeRequired):
		response.BadRequest(c, "contentType is required")
	case errors.Is(err, biz.ErrOwnerRequired):
		response.BadRequest(c, "ownerId is required")
	case errors.Is(err, biz.ErrSearchQueryRequired):
		response.BadRequest(c, "search query is required")
	case errors.Is(err, biz.ErrInvalidPagination):
		response.BadRequest(c, "invalid page or size")
	case errors.Is(err, biz.ErrInvalidSortField):
		response.BadRequest(c, "invalid sort field")
	case errors.Is(err, biz.ErrInvalidSortDir):
		response.BadRequest(c, "invalid sort direction")
	case errors.Is(err, biz.ErrInvalidLimit):
		response.BadRequest(c, "limit must be positive")
	default:
		s.logger.Error("internal error", zap.Error(err))
		response.InternalError(c, "internal server error")
	}
}

func toPageRequest(q PageQuery) biz.PageRequest {
	return biz.PageRequest{
		Page:    q.Page,
		Size:    q.Size,
		SortBy:  q.SortBy,
		SortDir: biz.SortDirection(q.SortDir),
	}
}

// limitParam parses the optional limit query parameter, defaulting when
// absent and rejecting non-positive or non-numeric values
func limitParam(c *gin.Context) (int, error) {
	raw, ok := c.GetQuery("limit")
	if !ok || raw == "" {
		return biz.DefaultRankingLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, biz.ErrInvalidLimit
	}

	return limit, nil
}
