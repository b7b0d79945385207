package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcave/internal/store"
	"mindcave/pkg/logging"
	"mindcave/pkg/middleware"
)

// BookmarksHandler serves the bookmark CRUD surface.
type BookmarksHandler struct {
	bookmarks BookmarkRepo
	resolver  MetadataResolver
	logger    logging.Logger
}

func NewBookmarksHandler(bookmarks BookmarkRepo, resolver MetadataResolver, logger logging.Logger) *BookmarksHandler {
	return &BookmarksHandler{
		bookmarks: bookmarks,
		resolver:  resolver,
		logger:    logger,
	}
}

type createBookmarkRequest struct {
	URL         string `json:"url" binding:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
	// Resolve triggers metadata enrichment before saving.
	Resolve bool `json:"resolve"`
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Create handles POST /api/bookmarks. A bookmark always saves even when
// enrichment fails; the resolver degrades to empty fields.
func (h *BookmarksHandler) Create(c *gin.Context) {
	var req createBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}
	userID := middleware.UserID(c)

	b := store.Bookmark{
		UserID:      userID,
		CategoryID:  nullString(req.CategoryID),
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		MediaType:   "default",
	}

	if req.Resolve || req.Title == "" {
		record := h.resolver.Resolve(c.Request.Context(), req.URL)
		if b.Title == "" {
			b.Title = record.Title
		}
		if b.Description == "" {
			b.Description = record.Description
		}
		b.OGImageURL = record.OGImageURL
		b.FaviconURL = record.FaviconURL
		b.MediaType = string(record.MediaType)
		b.MediaEmbedID = record.MediaEmbedID
	}
	if b.Title == "" {
		b.Title = req.URL
	}

	created, err := h.bookmarks.Create(c.Request.Context(), b)
	if err != nil {
		h.logger.WithFields(logging.Fields{
			"user_id": userID,
			"url":     req.URL,
			"error":   err.Error(),
		}).Error("Failed to create bookmark")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bookmark"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List handles GET /api/bookmarks with optional category_id and search
// query filters.
func (h *BookmarksHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	bookmarks, err := h.bookmarks.List(c.Request.Context(), userID, c.Query("category_id"), c.Query("search"))
	if err != nil {
		h.logger.WithFields(logging.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Failed to list bookmarks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookmarks"})
		return
	}
	if bookmarks == nil {
		bookmarks = []store.Bookmark{}
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": bookmarks})
}

// Get handles GET /api/bookmarks/:id.
func (h *BookmarksHandler) Get(c *gin.Context) {
	b, err := h.bookmarks.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bookmark not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get bookmark"})
		return
	}
	c.JSON(http.StatusOK, b)
}

type updateBookmarkRequest struct {
	URL          string `json:"url" binding:"required"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	CategoryID   string `json:"category_id"`
	OGImageURL   string `json:"og_image_url"`
	FaviconURL   string `json:"favicon_url"`
	MediaType    string `json:"media_type"`
	MediaEmbedID string `json:"media_embed_id"`
}

// Update handles PUT /api/bookmarks/:id.
func (h *BookmarksHandler) Update(c *gin.Context) {
	var req updateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = "default"
	}
	updated, err := h.bookmarks.Update(c.Request.Context(), middleware.UserID(c), store.Bookmark{
		ID:           c.Param("id"),
		CategoryID:   nullString(req.CategoryID),
		URL:          req.URL,
		Title:        req.Title,
		Description:  req.Description,
		OGImageURL:   req.OGImageURL,
		FaviconURL:   req.FaviconURL,
		MediaType:    mediaType,
		MediaEmbedID: req.MediaEmbedID,
	})
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bookmark not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bookmark"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/bookmarks/:id.
func (h *BookmarksHandler) Delete(c *gin.Context) {
	err := h.bookmarks.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bookmark not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bookmark"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
