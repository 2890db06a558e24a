package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newRequestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})
	return router
}

func TestRequestID_MintsWhenAbsent(t *testing.T) {
	rec := httptest.NewRecorder()
	newRequestIDRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := rec.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.Equal(t, id, rec.Body.String())
}

func TestRequestID_EchoesCallerValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	newRequestIDRouter().ServeHTTP(rec, req)

	require.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
	require.Equal(t, "abc-123", rec.Body.String())
}

func TestRequestID_ReplacesOversizedValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, strings.Repeat("x", 200))
	rec := httptest.NewRecorder()
	newRequestIDRouter().ServeHTTP(rec, req)

	_, err := uuid.Parse(rec.Header().Get(HeaderRequestID))
	require.NoError(t, err)
}
