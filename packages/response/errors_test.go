package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code ResponseCode
		want int
	}{
		{Fail, http.StatusInternalServerError},
		{ParseError, http.StatusBadRequest},
		{InvalidParameter, http.StatusUnprocessableEntity},
		{Unauthorized, http.StatusUnauthorized},
		{Forbidden, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{UpstreamError, http.StatusBadGateway},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), "code %d", tt.code)
	}
}

func TestAsBusinessError(t *testing.T) {
	be := NotFoundError("Không tìm thấy")
	wrapped := fmt.Errorf("service: %w", be)

	got := AsBusinessError(wrapped)
	assert.Same(t, be, got)

	plain := errors.New("boom")
	got = AsBusinessError(plain)
	assert.Equal(t, Fail, got.Code)
	assert.ErrorIs(t, got, plain)
}

func TestErrorResponse(t *testing.T) {
	be := NewBusinessError(
		WithErrorCode(InvalidParameter),
		WithErrorMessage("Bài viết đã tồn tại"),
		WithFields(map[string][]string{"slug": {"đã tồn tại"}}),
		WithError(errors.New("duplicate")),
	)

	r := ErrorResponse(be)
	assert.Equal(t, StatusError, r.Status)
	assert.Equal(t, "Bài viết đã tồn tại", r.Message)
	assert.Equal(t, "duplicate", r.Error)
	assert.Contains(t, r.Errors, "slug")
}
