package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcave/internal/metadata"
	"mindcave/internal/urlkey"
	"mindcave/pkg/logging"
)

// MetadataHandler serves on-demand metadata resolution, fronted by a
// cache keyed on the canonical URL.
type MetadataHandler struct {
	resolver MetadataResolver
	cache    metadata.Cache
	logger   logging.Logger
	metrics  *BookmarkMetrics
}

func NewMetadataHandler(resolver MetadataResolver, cache metadata.Cache, logger logging.Logger, metrics *BookmarkMetrics) *MetadataHandler {
	return &MetadataHandler{
		resolver: resolver,
		cache:    cache,
		logger:   logger,
		metrics:  metrics,
	}
}

type resolveRequest struct {
	URL string `json:"url" binding:"required"`
}

// Resolve handles POST /api/metadata/resolve.
func (h *MetadataHandler) Resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.IncResolve("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	ctx := c.Request.Context()

	// Cache key is the canonical URL so tracking-param variants share one
	// entry. Uncanonicalizable input still resolves, just uncached.
	cacheKey := ""
	if canonical, err := urlkey.Normalize(req.URL); err == nil {
		cacheKey = canonical
	}

	if h.cache != nil && cacheKey != "" {
		if record, ok := h.cache.Get(ctx, cacheKey); ok {
			h.metrics.IncResolve("cache_hit")
			c.JSON(http.StatusOK, record)
			return
		}
	}

	record := h.resolver.Resolve(ctx, req.URL)
	if h.cache != nil && cacheKey != "" {
		h.cache.Set(ctx, cacheKey, record)
	}

	h.metrics.IncResolve("resolved")
	c.JSON(http.StatusOK, record)
}
