package markdown_test

import (
	"testing"

	"github.com/door43-tools/tanotion/internal/markdown"
	"github.com/stretchr/testify/assert"
)

func TestToSuperscript(t *testing.T) {
	assert.Equal(t, "¹", markdown.ToSuperscript("1"))
	assert.Equal(t, "¹⁶", markdown.ToSuperscript("16"))
	assert.Equal(t, "⁰¹²³⁴⁵⁶⁷⁸⁹", markdown.ToSuperscript("0123456789"))
	assert.Equal(t, "a¹b", markdown.ToSuperscript("a1b"))
}

func TestReplaceSupTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"verse number", "<sup>16</sup>Then Jesus said", "¹⁶Then Jesus said"},
		{"bracketed", "a footnote<sup>[2]</sup> marker", "a footnote⁽²⁾ marker"},
		{"combined", "<sup>16 [1]</sup>Then", "¹⁶⁽¹⁾Then"},
		{"with inner spaces", "<sup> 7 </sup>word", "⁷word"},
		{"multiple", "<sup>1</sup>a <sup>2</sup>b", "¹a ²b"},
		{"untouched text", "no tags here", "no tags here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := markdown.Document(tt.input).Transform(markdown.ReplaceSupTags())
			assert.Equal(t, tt.expected, string(actual))
		})
	}
}

func TestReplaceLineBreakTags(t *testing.T) {
	actual := markdown.Document("one<br>two<br/>three<br />four").
		Transform(markdown.ReplaceLineBreakTags())
	assert.Equal(t, "one\ntwo\nthree\nfour", string(actual))
}

func TestUnescapeBrackets(t *testing.T) {
	actual := markdown.Document(`text \[^1\] more`).
		Transform(markdown.UnescapeBrackets())
	assert.Equal(t, "text [^1] more", string(actual))
}

func TestFixLiteralNewlines(t *testing.T) {
	actual := markdown.Document(`first\nsecond`).
		Transform(markdown.FixLiteralNewlines())
	assert.Equal(t, "first\nsecond", string(actual))
}

func TestStripHTMLComments(t *testing.T) {
	actual := markdown.Document("before <!-- hidden\nacross lines --> after").
		Transform(markdown.StripHTMLComments())
	assert.Equal(t, "before  after", string(actual))
}
