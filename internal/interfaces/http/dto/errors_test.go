package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"already exists", ErrCodeAlreadyExists, http.StatusConflict},
		{"concurrency conflict", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"invalid state", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"invalid date range", ErrCodeInvalidDateRange, http.StatusBadRequest},
		{"bad request", ErrCodeBadRequest, http.StatusBadRequest},
		{"unauthorized", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"internal", ErrCodeInternal, http.StatusInternalServerError},
		{"unknown code falls back to 500", "ERR_DOES_NOT_EXIST", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"domain not found", "NOT_FOUND", ErrCodeNotFound},
		{"domain duplicate", "ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"domain invalid state", "INVALID_STATE", ErrCodeInvalidState},
		{"domain date range", "INVALID_DATE_RANGE", ErrCodeInvalidDateRange},
		{"order validation code", "INVALID_ORDER_NUMBER", ErrCodeInvalidInput},
		{"timestamp validation code", "INVALID_TIMESTAMP", ErrCodeInvalidInput},
		{"schedule validation code", "INVALID_SCHEDULE", ErrCodeInvalidInput},
		{"already normalized", ErrCodeNotFound, ErrCodeNotFound},
		{"unknown passes through", "SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.code))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Order not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Order not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2, 3}, 45, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 20, resp.Meta.PageSize)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
