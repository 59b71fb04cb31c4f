package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		want  PaginationParams
	}{
		{"", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"?page=3&limit=10", PaginationParams{Page: 3, Limit: 10, Offset: 20}},
		{"?page=0&limit=0", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"?page=2&limit=500", PaginationParams{Page: 2, Limit: 100, Offset: 100}},
		{"?page=abc", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/notifications"+tt.query, nil)
			assert.Equal(t, tt.want, GetPaginationParams(c))
		})
	}
}

func TestPaginationParams_Response(t *testing.T) {
	assert.Equal(t, PaginationResponse{Page: 1, Limit: 20, Total: 41, Pages: 3}, NewPage(1, 20).Response(41))
	assert.Equal(t, int64(0), NewPage(1, 20).Response(0).Pages)
	assert.Equal(t, int64(0), PaginationParams{}.Response(5).Pages)
}
