package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcave/internal/importer"
	"mindcave/pkg/logging"
	"mindcave/pkg/middleware"
)

// 10 MiB is generous; browser exports are rarely over 1 MiB.
const maxImportFileSize = 10 << 20

// ImportHandler accepts bookmark export files.
type ImportHandler struct {
	importer BookmarkImporter
	logger   logging.Logger
	metrics  *BookmarkMetrics
}

func NewImportHandler(imp BookmarkImporter, logger logging.Logger, metrics *BookmarkMetrics) *ImportHandler {
	return &ImportHandler{importer: imp, logger: logger, metrics: metrics}
}

// Import handles POST /api/import (multipart form with a "file" part and
// optional "skip_duplicates" / "enrich" fields).
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.metrics.IncImport("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxImportFileSize {
		h.metrics.IncImport("too_large")
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.metrics.IncImport("read_error")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxImportFileSize))
	if err != nil {
		h.metrics.IncImport("read_error")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}

	userID := middleware.UserID(c)
	opts := importer.Options{
		SkipDuplicates: c.PostForm("skip_duplicates") == "true",
		Enrich:         c.PostForm("enrich") == "true",
	}

	result, err := h.importer.Import(c.Request.Context(), userID, string(content), opts)
	if err != nil {
		h.logger.WithFields(logging.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Bookmark import failed")
		h.metrics.IncImport("error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed"})
		return
	}

	h.metrics.IncImport("ok")
	h.metrics.AddImportRecords("imported", result.Imported)
	h.metrics.AddImportRecords("skipped", result.Skipped)
	c.JSON(http.StatusOK, result)
}
