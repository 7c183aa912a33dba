package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizenheimer/blaze"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine, err := blaze.NewEngine(blaze.DefaultConfig(t.TempDir()))
	require.NoError(t, err)

	service := NewService(engine, nil)
	handlers := NewHandlers(service)

	router := gin.New()
	RegisterRoutes(router.Group("/search"), handlers)
	return router, service
}

func TestHandleIndexDocument_Success(t *testing.T) {
	router, _ := newTestRouter(t)

	body, _ := json.Marshal(indexDocumentRequest{URL: "http://a", Content: "the quick fox"})
	req := httptest.NewRequest(http.MethodPost, "/search/index/document", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandleIndexDocument_MissingFields(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/search/index/document", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleNumberOfDocuments(t *testing.T) {
	router, service := newTestRouter(t)
	require.NoError(t, service.IndexDocument("http://a", "fox"))

	req := httptest.NewRequest(http.MethodGet, "/search/index/number_of_documents", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body["count"])
}

func TestHandleSearch_EmptyQueryRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/search?query=", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearch_ReturnsResults(t *testing.T) {
	router, service := newTestRouter(t)
	require.NoError(t, service.IndexDocument("http://a", "the quick fox"))

	req := httptest.NewRequest(http.MethodGet, "/search?query=fox", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Query   string             `json:"query"`
		Results map[string]float64 `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Results, "http://a")
}

func TestHandleDebugIndex(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/search/debug", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
