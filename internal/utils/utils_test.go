package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/kanban-board-api/internal/constants"
)

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, constants.DefaultPageSize},
		{"explicit", "?page=3&limit=10", 3, 10},
		{"negative page", "?page=-2", 1, constants.DefaultPageSize},
		{"limit too large", "?limit=1000", 1, constants.DefaultPageSize},
		{"garbage", "?page=abc&limit=xyz", 1, constants.DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/"+tt.query, nil)

			params := GetPaginationParams(c)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.Equal(t, (tt.wantPage-1)*tt.wantLimit, params.Offset)
		})
	}
}

func TestNewPaginationResponse(t *testing.T) {
	resp := NewPaginationResponse(PaginationParams{Page: 2, Limit: 10, Offset: 10}, 25)
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasNext())
	assert.True(t, resp.HasPrev())

	resp = NewPaginationResponse(PaginationParams{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, resp.TotalPages)
	assert.False(t, resp.HasNext())
	assert.False(t, resp.HasPrev())
}

func TestGenerateAPIToken(t *testing.T) {
	a, err := GenerateAPIToken()
	require.NoError(t, err)
	b, err := GenerateAPIToken()
	require.NoError(t, err)

	assert.Len(t, a, constants.APITokenBytes*2)
	assert.NotEqual(t, a, b)
}
