package httpapi

import "github.com/gin-gonic/gin"

// RegisterRoutes wires handlers onto rg, grouping the index-management
// endpoints under /index the way multi-resource services in this codebase
// group routes by concern.
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	index := rg.Group("/index")
	{
		index.POST("/document", handlers.HandleIndexDocument)
		index.GET("/number_of_documents", handlers.HandleNumberOfDocuments)
	}

	rg.GET("", handlers.HandleSearch)
	rg.GET("/debug", handlers.HandleDebugIndex)
}
