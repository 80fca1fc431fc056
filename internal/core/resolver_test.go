package core_test

import (
	"testing"

	"github.com/door43-tools/tanotion/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractArticleID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"relative with 01.md", "../figs-metaphor/01.md", "figs-metaphor"},
		{"deep relative", "../../translate/figs-simile/01.md", "figs-simile"},
		{"manual-qualified directory", "../../checking/acceptable/", "acceptable"},
		{"manual-qualified bare slug", "../../process/setup-team", "setup-team"},
		{"relative directory", "../figs-metaphor/", "figs-metaphor"},
		{"numbered file", "../02-process.md", "02-process"},
		{"gitea url", "https://git.door43.org/unfoldingWord/en_ta/src/branch/master/translate/figs-metaphor/01.md", "figs-metaphor"},
		{"gitea checking url", "https://git.door43.org/unfoldingWord/en_ta/src/branch/master/checking/acceptable/01.md", "acceptable"},
		{"external url", "https://example.com/page", ""},
		{"plain anchor", "#section", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, core.ExtractArticleID(tt.url))
		})
	}
}

func TestNotionPageURL(t *testing.T) {
	assert.Equal(t, "https://www.notion.so/abc123def456",
		core.NotionPageURL("abc1-23de-f456"))
}

func TestResolveLink(t *testing.T) {
	cache := core.NewCache()
	cache.RecordPage("figs-metaphor", "page-1")
	cache.RecordTitle("page-1", "Metaphor")
	cache.RecordURL("../figs-simile/01.md", "page-2")
	cache.RecordTitle("page-3", "Figures of Speech")
	cache.RecordPage("figs-intro", "page-3")
	resolver := core.NewLinkResolver(cache)

	t.Run("exact url variant", func(t *testing.T) {
		url, ok := resolver.ResolveLink("../figs-simile/01.md", "Simile")
		require.True(t, ok)
		assert.Equal(t, "https://www.notion.so/page2", url)
	})

	t.Run("article id from url", func(t *testing.T) {
		url, ok := resolver.ResolveLink("../figs-metaphor/01.md", "")
		require.True(t, ok)
		assert.Equal(t, "https://www.notion.so/page1", url)
	})

	t.Run("exact title", func(t *testing.T) {
		url, ok := resolver.ResolveLink("../unknown-path/01.md", "Metaphor")
		require.True(t, ok)
		assert.Equal(t, "https://www.notion.so/page1", url)
	})

	t.Run("fuzzy title", func(t *testing.T) {
		url, ok := resolver.ResolveLink("../unknown-path/01.md", "figures of speech")
		require.True(t, ok)
		assert.Equal(t, "https://www.notion.so/page3", url)
	})

	t.Run("unresolved internal link", func(t *testing.T) {
		_, ok := resolver.ResolveLink("../figs-unknown/01.md", "Unknown")
		assert.False(t, ok)
	})

	t.Run("external link untouched", func(t *testing.T) {
		_, ok := resolver.ResolveLink("https://example.com", "Example")
		assert.False(t, ok)
	})
}
