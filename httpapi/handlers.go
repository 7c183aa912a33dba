package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse is the JSON body returned for every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// Handlers binds a Service to gin handler functions.
type Handlers struct {
	service *Service
}

// NewHandlers returns Handlers backed by service.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

type indexDocumentRequest struct {
	URL     string `json:"url" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// HandleIndexDocument implements POST /search/index/document.
func (h *Handlers) HandleIndexDocument(c *gin.Context) {
	requestID := uuid.NewString()
	logger := h.service.logger.With("request_id", requestID, "handler", "HandleIndexDocument")

	var req indexDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "url and content are required", Code: http.StatusBadRequest})
		return
	}

	if err := h.service.IndexDocument(req.URL, req.Content); err != nil {
		logger.Error("indexing failed", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to index document", Code: http.StatusInternalServerError})
		return
	}

	logger.Info("document indexed", "url", req.URL)
	c.JSON(http.StatusCreated, gin.H{"url": req.URL})
}

// HandleNumberOfDocuments implements GET /search/index/number_of_documents.
func (h *Handlers) HandleNumberOfDocuments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.service.NumberOfDocuments()})
}

// HandleSearch implements GET /search?query=.
func (h *Handlers) HandleSearch(c *gin.Context) {
	requestID := uuid.NewString()
	logger := h.service.logger.With("request_id", requestID, "handler", "HandleSearch")

	query := c.Query("query")
	if query == "" {
		logger.Warn("empty query rejected")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query parameter is required", Code: http.StatusBadRequest})
		return
	}

	results := h.service.Search(query)
	logger.Info("search served", "query", query, "results", len(results))
	c.JSON(http.StatusOK, gin.H{"query": query, "results": results})
}

// HandleDebugIndex implements GET /search/debug.
func (h *Handlers) HandleDebugIndex(c *gin.Context) {
	h.service.DebugIndex()
	c.JSON(http.StatusOK, gin.H{"status": "logged"})
}
