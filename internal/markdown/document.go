// Package markdown converts the restricted markdown dialect used by the
// Translation Academy corpus into a tree of Notion blocks.
package markdown

import (
	"strings"

	"github.com/door43-tools/tanotion/pkg/text"
)

// Document represents a Markdown document (a whole article or a snippet).
type Document string

// Null object
var EmptyDocument = Document("")

// Lines returns the lines present in the Markdown document.
func (m Document) Lines() []string {
	return strings.Split(string(m), "\n")
}

func (m Document) IsBlank() bool {
	return text.IsBlank(string(m))
}

func (m Document) Iterator() *text.LineIterator {
	return text.NewLineIteratorFromText(string(m))
}

func (m Document) String() string {
	return string(m)
}

// TrimSpace removes spaces at the start and end of a markdown document.
func (m Document) TrimSpace() Document {
	return Document(strings.TrimSpace(string(m)))
}

// Transformer applies changes on a Markdown document.
type Transformer func(document Document) Document

// Transform applies transformers successively to create a new Markdown document.
func (m Document) Transform(transformers ...Transformer) Document {
	result := m
	for _, transformer := range transformers {
		result = transformer(result)
	}
	return result
}
