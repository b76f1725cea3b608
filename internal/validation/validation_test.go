package validation

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/kanban-board-api/internal/dto"
)

func bind(t *testing.T, body string, obj any) map[string][]string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return BindJSON(c, obj)
}

func TestIsColor(t *testing.T) {
	assert.True(t, IsColor("#FF0000"))
	assert.True(t, IsColor("#abc"))
	assert.False(t, IsColor("FF0000"))
	assert.False(t, IsColor("#GGGGGG"))
	assert.False(t, IsColor("#FF00"))
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		obj  any
		want map[string][]string
	}{
		{
			name: "valid label",
			body: `{"title":"Bug","color":"#F00"}`,
			obj:  &dto.LabelRequest{},
			want: nil,
		},
		{
			name: "missing required fields",
			body: `{}`,
			obj:  &dto.BoardRequest{},
			want: map[string][]string{
				"title":      {"This field is required."},
				"created_by": {"This field is required."},
			},
		},
		{
			name: "empty body",
			body: ``,
			obj:  &dto.ColumnRequest{},
			want: map[string][]string{"title": {"This field is required."}},
		},
		{
			// Blank strings are present; the services reject them
			name: "blank title",
			body: `{"title":""}`,
			obj:  &dto.ColumnRequest{},
			want: nil,
		},
		{
			name: "too long",
			body: `{"title":"` + strings.Repeat("x", 33) + `"}`,
			obj:  &dto.LabelRequest{},
			want: map[string][]string{"title": {"Ensure this field has no more than 32 characters."}},
		},
		{
			name: "bad color",
			body: `{"title":"Bug","color":"red"}`,
			obj:  &dto.LabelRequest{},
			want: map[string][]string{"color": {"Enter a valid color."}},
		},
		{
			name: "wrong type",
			body: `{"title":"Todo","position":"first"}`,
			obj:  &dto.ColumnRequest{},
			want: map[string][]string{"position": {"A valid integer is required."}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bind(t, tt.body, tt.obj))
		})
	}
}

func TestBindJSON_Malformed(t *testing.T) {
	errs := bind(t, `{"title":`, &dto.BoardRequest{})
	assert.Contains(t, errs, NonFieldErrors)
}
