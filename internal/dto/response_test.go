package dto

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	res "terminal-terrace/ai-magazine/packages/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type createRequest struct {
	Title     string `json:"title" binding:"required,max=10"`
	SourceURL string `json:"source_url" binding:"omitempty,url"`
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Title":      "title",
		"SourceURL":  "source_url",
		"CategoryID": "category_id",
		"APIKey":     "api_key",
		"PerPage":    "per_page",
	}
	for in, want := range tests {
		assert.Equal(t, want, toSnakeCase(in), in)
	}
}

func TestValidationErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"source_url":"not a url"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req createRequest
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)
	ValidationErrorResponse(c, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body res.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, res.StatusError, body.Status)
	assert.Contains(t, body.Errors, "title")
	assert.Contains(t, body.Errors, "source_url")
	assert.Equal(t, "Trường 'title' là bắt buộc", body.Message)
}

func TestValidationErrorResponseMalformedJSON(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req createRequest
	ValidationErrorResponse(c, c.ShouldBindJSON(&req))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleError(c, res.NotFoundError("Không tìm thấy bài viết"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Không tìm thấy bài viết")
}

func TestNewPage(t *testing.T) {
	q := PageQuery{Page: 0, PerPage: 500}
	q.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, maxPerPage, q.PerPage)

	q = PageQuery{Page: 2, PerPage: 10}
	assert.Equal(t, 10, q.Offset())

	p := NewPage([]int{1, 2}, 21, q)
	assert.Equal(t, 3, p.LastPage)

	empty := NewPage[int](nil, 0, q)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 1, empty.LastPage)
}
