package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreviewContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "short body unchanged",
			content:  "short",
			expected: "short",
		},
		{
			name:     "empty body unchanged",
			content:  "",
			expected: "",
		},
		{
			name:     "exactly 50 characters unchanged",
			content:  strings.Repeat("a", 50),
			expected: strings.Repeat("a", 50),
		},
		{
			name:     "60 characters truncated to 50 plus ellipsis",
			content:  strings.Repeat("a", 60),
			expected: strings.Repeat("a", 50) + "...",
		},
		{
			name:     "51 characters truncated",
			content:  strings.Repeat("b", 51),
			expected: strings.Repeat("b", 50) + "...",
		},
		{
			name:     "multibyte characters counted as characters not bytes",
			content:  strings.Repeat("é", 50),
			expected: strings.Repeat("é", 50),
		},
		{
			name:     "multibyte overflow truncated on character boundary",
			content:  strings.Repeat("é", 51),
			expected: strings.Repeat("é", 50) + "...",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, PreviewContent(tt.content))
		})
	}
}

func TestCommentAfterFindSetsPreview(t *testing.T) {
	t.Parallel()

	c := &Comment{Content: strings.Repeat("x", 80)}
	assert.NoError(t, c.AfterFind(nil))
	assert.Equal(t, strings.Repeat("x", 50)+"...", c.ContentPreview)
}
