package handlers

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"mindcave/internal/urlkey"
	"mindcave/pkg/logging"
	"mindcave/pkg/middleware"
)

// MediaHandler serves upload, lookup and deletion of stored bookmark
// media (og images and favicons).
type MediaHandler struct {
	media  MediaStore
	logger logging.Logger
}

func NewMediaHandler(media MediaStore, logger logging.Logger) *MediaHandler {
	return &MediaHandler{media: media, logger: logger}
}

func parseKind(s string) (urlkey.Kind, bool) {
	switch urlkey.Kind(s) {
	case urlkey.KindOGImage:
		return urlkey.KindOGImage, true
	case urlkey.KindFavicon:
		return urlkey.KindFavicon, true
	}
	return "", false
}

// Upload handles POST /api/media (multipart form: "file", "url", "kind").
func (h *MediaHandler) Upload(c *gin.Context) {
	rawURL := c.PostForm("url")
	kind, ok := parseKind(c.PostForm("kind"))
	if rawURL == "" || !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url and kind (ogimage|favicon) are required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer file.Close()

	ext := strings.TrimPrefix(path.Ext(fileHeader.Filename), ".")
	if ext == "" {
		ext = "png"
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	userID := middleware.UserID(c)
	publicURL, err := h.media.Upload(c.Request.Context(), userID, rawURL, kind, ext, contentType, file)
	if errors.Is(err, urlkey.ErrInvalidURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid url"})
		return
	}
	if err != nil {
		h.logger.WithFields(logging.Fields{
			"user_id": userID,
			"url":     rawURL,
			"kind":    string(kind),
			"error":   err.Error(),
		}).Error("Media upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": publicURL})
}

// Get handles GET /api/media?url=...&kind=... and reports the stored
// object's public URL, if any.
func (h *MediaHandler) Get(c *gin.Context) {
	rawURL := c.Query("url")
	kind, ok := parseKind(c.Query("kind"))
	if rawURL == "" || !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url and kind (ogimage|favicon) are required"})
		return
	}

	exists, key, err := h.media.Exists(c.Request.Context(), middleware.UserID(c), rawURL, kind)
	if errors.Is(err, urlkey.ErrInvalidURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid url"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "No media stored for this url"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": h.media.PublicURL(key)})
}

// Delete handles DELETE /api/media?url=...&kind=...&ext=...
func (h *MediaHandler) Delete(c *gin.Context) {
	rawURL := c.Query("url")
	kind, ok := parseKind(c.Query("kind"))
	if rawURL == "" || !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url and kind (ogimage|favicon) are required"})
		return
	}
	ext := c.Query("ext")
	if ext == "" {
		ext = "png"
	}

	err := h.media.Delete(c.Request.Context(), middleware.UserID(c), rawURL, kind, ext)
	if errors.Is(err, urlkey.ErrInvalidURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid url"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
