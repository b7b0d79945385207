package handlers

import (
	"github.com/gin-gonic/gin"

	"mindcave/pkg/middleware"
)

// RegisterRoutes mounts the authenticated API surface on app.
func RegisterRoutes(
	app *gin.Engine,
	verifier middleware.TokenVerifier,
	metadataHandler *MetadataHandler,
	bookmarksHandler *BookmarksHandler,
	categoriesHandler *CategoriesHandler,
	importHandler *ImportHandler,
	mediaHandler *MediaHandler,
) {
	api := app.Group("/api")
	api.Use(middleware.UserAuthMiddleware(verifier))

	api.POST("/metadata/resolve", metadataHandler.Resolve)

	api.POST("/bookmarks", bookmarksHandler.Create)
	api.GET("/bookmarks", bookmarksHandler.List)
	api.GET("/bookmarks/:id", bookmarksHandler.Get)
	api.PUT("/bookmarks/:id", bookmarksHandler.Update)
	api.DELETE("/bookmarks/:id", bookmarksHandler.Delete)

	api.POST("/categories", categoriesHandler.Create)
	api.GET("/categories", categoriesHandler.List)
	api.PUT("/categories/:id", categoriesHandler.Update)
	api.DELETE("/categories/:id", categoriesHandler.Delete)

	api.POST("/import", importHandler.Import)

	if mediaHandler != nil {
		api.POST("/media", mediaHandler.Upload)
		api.GET("/media", mediaHandler.Get)
		api.DELETE("/media", mediaHandler.Delete)
	}
}
