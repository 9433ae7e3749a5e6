package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithFrontmatter(t *testing.T) {
	source := []byte("---\ntitle: Rough day\nmood: anxious\ntags: [work, sleep]\n---\n\nSlept **badly**.\n")

	html, meta, err := NewParser().ParseWithFrontmatter(source)
	require.NoError(t, err)

	assert.Contains(t, string(html), "<strong>badly</strong>")
	assert.NotContains(t, string(html), "title:")
	assert.Equal(t, "Rough day", meta["title"])
	assert.Equal(t, "anxious", meta["mood"])
	assert.Equal(t, []any{"work", "sleep"}, meta["tags"])
}

func TestParseWithFrontmatter_NoFrontmatter(t *testing.T) {
	html, meta, err := NewParser().ParseWithFrontmatter([]byte("# Gratitude\n\nSunlight."))
	require.NoError(t, err)

	assert.Contains(t, string(html), "<h1")
	assert.Empty(t, meta)
}

func TestParse_EscapesRawHTML(t *testing.T) {
	html, err := NewParser().Parse([]byte("<script>alert(1)</script>"))
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
}
