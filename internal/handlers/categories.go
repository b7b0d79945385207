package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcave/internal/store"
	"mindcave/pkg/logging"
	"mindcave/pkg/middleware"
)

// CategoriesHandler serves the category CRUD surface.
type CategoriesHandler struct {
	categories CategoryRepo
	logger     logging.Logger
}

func NewCategoriesHandler(categories CategoryRepo, logger logging.Logger) *CategoriesHandler {
	return &CategoriesHandler{categories: categories, logger: logger}
}

type categoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order"`
}

// Create handles POST /api/categories.
func (h *CategoriesHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	userID := middleware.UserID(c)

	created, err := h.categories.Create(c.Request.Context(), store.Category{
		UserID:    userID,
		Name:      req.Name,
		Icon:      req.Icon,
		Color:     req.Color,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		h.logger.WithFields(logging.Fields{
			"user_id": userID,
			"name":    req.Name,
			"error":   err.Error(),
		}).Error("Failed to create category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}
	if categories == nil {
		categories = []store.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Update handles PUT /api/categories/:id.
func (h *CategoriesHandler) Update(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	updated, err := h.categories.Update(c.Request.Context(), middleware.UserID(c), store.Category{
		ID:        c.Param("id"),
		Name:      req.Name,
		Icon:      req.Icon,
		Color:     req.Color,
		SortOrder: req.SortOrder,
	})
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/categories/:id.
func (h *CategoriesHandler) Delete(c *gin.Context) {
	err := h.categories.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
