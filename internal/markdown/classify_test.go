package markdown_test

import (
	"testing"

	"github.com/door43-tools/tanotion/internal/markdown"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected markdown.Classification
	}{
		{
			name:     "blank",
			line:     "   ",
			expected: markdown.Classification{Kind: markdown.KindBlank},
		},
		{
			name:     "heading",
			line:     "## Section Title",
			expected: markdown.Classification{Kind: markdown.KindHeading, HeadingLevel: 2, Content: "Section Title"},
		},
		{
			name:     "heading without space is text",
			line:     "#hashtag",
			expected: markdown.Classification{Kind: markdown.KindText, Content: "#hashtag"},
		},
		{
			name:     "quote",
			line:     "> quoted text",
			expected: markdown.Classification{Kind: markdown.KindQuote, QuoteDepth: 1, Content: "quoted text"},
		},
		{
			name:     "nested quote with spaces",
			line:     "> > deeper",
			expected: markdown.Classification{Kind: markdown.KindQuote, QuoteDepth: 2, Content: "deeper"},
		},
		{
			name:     "bare quote",
			line:     ">",
			expected: markdown.Classification{Kind: markdown.KindQuote, QuoteDepth: 1, Content: ""},
		},
		{
			name:     "bullet asterisk",
			line:     "* item",
			expected: markdown.Classification{Kind: markdown.KindBulletedItem, Content: "item"},
		},
		{
			name:     "bullet dash indented",
			line:     "  - item",
			expected: markdown.Classification{Kind: markdown.KindBulletedItem, Indent: 2, Content: "item"},
		},
		{
			name:     "numbered dot",
			line:     "3. third thing",
			expected: markdown.Classification{Kind: markdown.KindNumberedItem, Content: "third thing"},
		},
		{
			name:     "numbered parenthesized",
			line:     "(2) second thing",
			expected: markdown.Classification{Kind: markdown.KindNumberedItem, Content: "second thing"},
		},
		{
			name:     "code fence with language",
			line:     "```python",
			expected: markdown.Classification{Kind: markdown.KindCodeFence, Language: "python"},
		},
		{
			name:     "code fence bare",
			line:     "```",
			expected: markdown.Classification{Kind: markdown.KindCodeFence},
		},
		{
			name:     "table row",
			line:     "| a | b |",
			expected: markdown.Classification{Kind: markdown.KindTableRow, Content: "| a | b |"},
		},
		{
			name:     "lone pipe is text",
			line:     "|",
			expected: markdown.Classification{Kind: markdown.KindText, Content: "|"},
		},
		{
			name:     "footnote definition",
			line:     "[^3]: the note",
			expected: markdown.Classification{Kind: markdown.KindFootnoteDef, FootnoteKey: "3", Content: "the note"},
		},
		{
			name:     "plain text",
			line:     "just a sentence.",
			expected: markdown.Classification{Kind: markdown.KindText, Content: "just a sentence."},
		},
		{
			name:     "version number is not a list",
			line:     "1.Kings",
			expected: markdown.Classification{Kind: markdown.KindText, Content: "1.Kings"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, markdown.Classify(tt.line))
		})
	}
}

func TestBreaksParagraph(t *testing.T) {
	breaking := []string{"", "# h", "> q", "* b", "- b", "| t |", "```", "1. n", "(1) n", "[^1]: f", "*emphasis opener"}
	for _, line := range breaking {
		assert.True(t, markdown.BreaksParagraph(line), "expected %q to break", line)
	}
	flowing := []string{"plain continuation", "a [link](x) line", "1999 was a year"}
	for _, line := range flowing {
		assert.False(t, markdown.BreaksParagraph(line), "expected %q to flow", line)
	}
}
