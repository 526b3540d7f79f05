package response_test

import (
	"errors"
	"listo/shared/constant"
	"listo/shared/failure"
	"listo/transport/http/response"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "failure keeps its code and message",
			err:      failure.BadRequestFromString("created_at is required"),
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"created_at is required"}`,
		},
		{
			name:     "store error hides its cause",
			err:      failure.StoreError("failed to create item", errors.New("pq: connection refused")),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"failed to create item"}`,
		},
		{
			name:     "plain error becomes generic",
			err:      errors.New("sql: database is closed"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWithText(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithText(rec, http.StatusOK, "42")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constant.ContentTypeText, rec.Header().Get(constant.RequestHeaderContentType))
	assert.Equal(t, "42", rec.Body.String())
}

func TestWithPayload(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithPayload(rec, http.StatusOK, map[string]int{"a": 1})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"a":1}`, rec.Body.String())
}

func TestWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithRequestLimitExceeded(rec)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"message":"REQUEST LIMIT EXCEEDED"}`, rec.Body.String())
}

func TestWithRouteNotFound(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithRouteNotFound(rec)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, rec.Body.String())
}
