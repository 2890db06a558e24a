package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var errGone = errors.New("gone")

func serve(t *testing.T, responder *Responder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/things", func(c *gin.Context) { responder.RespondError(c, err) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/things", nil))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestResponder_UsesMappers(t *testing.T) {
	responder := NewResponder(func(err error) (ProblemDetail, bool) {
		if errors.Is(err, errGone) {
			return ErrUnavailable.WithDetail(err.Error()), true
		}
		return ProblemDetail{}, false
	})

	rec, problem := serve(t, responder, errGone)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	require.Equal(t, TypeUnavailable, problem.Type)
	require.Equal(t, "/api/things", problem.Instance)
}

func TestResponder_FallsBackToInternal(t *testing.T) {
	rec, problem := serve(t, NewResponder(), errors.New("boom"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "boom", problem.Detail)
}

func TestResponder_PassesProblemThrough(t *testing.T) {
	rec, problem := serve(t, NewResponder(), NewNotFoundProblem("dog", 7))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "dog", problem.Extensions["resourceType"])
	require.Equal(t, "Resource Not Found: dog with identifier '7' not found", problem.Error())
}

func TestWithExtension_DoesNotAliasTemplate(t *testing.T) {
	_ = ErrBadRequest.WithExtension("field", "breed")
	require.Nil(t, ErrBadRequest.Extensions)
}
