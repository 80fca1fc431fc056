package markdown_test

import (
	"strings"
	"testing"

	"github.com/door43-tools/tanotion/internal/markdown"
	"github.com/door43-tools/tanotion/internal/notion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertHeadings(t *testing.T) {
	converter := markdown.NewConverter()

	doc := markdown.Document(strings.Join([]string{
		"# Title",
		"## Section",
		"### Subsection",
		"#### Deep",
	}, "\n"))

	blocks := converter.Convert(doc)
	require.Len(t, blocks, 4)
	assert.Equal(t, notion.TypeHeading1, blocks[0].Type)
	assert.Equal(t, notion.TypeHeading2, blocks[1].Type)
	assert.Equal(t, notion.TypeHeading3, blocks[2].Type)
	// The sink has only three heading ranks: level 4 collapses into level 3.
	assert.Equal(t, notion.TypeHeading3, blocks[3].Type)
	assert.Equal(t, "Deep", blocks[3].PlainText())
}

func TestConvertParagraphJoinsLines(t *testing.T) {
	converter := markdown.NewConverter()

	doc := markdown.Document("first line\nsecond line\n\nnew paragraph")
	blocks := converter.Convert(doc)
	require.Len(t, blocks, 2)
	assert.Equal(t, "first line second line", blocks[0].PlainText())
	assert.Equal(t, "new paragraph", blocks[1].PlainText())
}

func TestConvertBlockquoteNesting(t *testing.T) {
	converter := markdown.NewConverter()

	// Depth pattern >, >>, > produces one top-level quote with a nested
	// child, then a second top-level quote (depth resets).
	doc := markdown.Document(strings.Join([]string{
		"> first",
		"> > nested",
		"> second",
	}, "\n"))

	blocks := converter.Convert(doc)
	require.Len(t, blocks, 2)

	first := blocks[0]
	assert.Equal(t, notion.TypeQuote, first.Type)
	assert.Equal(t, "first", first.PlainText())
	require.Len(t, first.Children(), 1)
	assert.Equal(t, notion.TypeQuote, first.Children()[0].Type)
	assert.Equal(t, "nested", first.Children()[0].PlainText())

	second := blocks[1]
	assert.Equal(t, notion.TypeQuote, second.Type)
	assert.Equal(t, "second", second.PlainText())
	assert.Empty(t, second.Children())
}

func TestConvertEmptyBlockquote(t *testing.T) {
	converter := markdown.NewConverter()

	// A bare '>' yields a single-space placeholder, never an empty run.
	blocks := converter.Convert(markdown.Document(">"))
	require.Len(t, blocks, 1)
	assert.Equal(t, notion.TypeQuote, blocks[0].Type)
	assert.Equal(t, " ", blocks[0].PlainText())
}

func TestConvertNoEmptyTextBlocks(t *testing.T) {
	converter := markdown.NewConverter()

	inputs := []string{
		">",
		"> \n>\n> ",
		"text\n\n\n\ntext",
		"* \n",
	}
	for _, input := range inputs {
		var walk func(blocks []*notion.Block)
		walk = func(blocks []*notion.Block) {
			for _, block := range blocks {
				switch block.Type {
				case notion.TypeParagraph, notion.TypeQuote:
					assert.NotEmpty(t, block.PlainText(), "empty %s block for input %q", block.Type, input)
				}
				walk(block.Children())
			}
		}
		walk(converter.Convert(markdown.Document(input)))
	}
}

func TestConvertLists(t *testing.T) {
	converter := markdown.NewConverter()

	doc := markdown.Document(strings.Join([]string{
		"1. first",
		"2. second",
		"   * nested bullet",
		"3. third",
	}, "\n"))

	blocks := converter.Convert(doc)
	require.Len(t, blocks, 3)
	assert.Equal(t, notion.TypeNumberedListItem, blocks[0].Type)
	assert.Equal(t, notion.TypeNumberedListItem, blocks[1].Type)
	require.Len(t, blocks[1].Children(), 1)
	assert.Equal(t, notion.TypeBulletedListItem, blocks[1].Children()[0].Type)
	assert.Equal(t, "nested bullet", blocks[1].Children()[0].PlainText())
	assert.Equal(t, notion.TypeNumberedListItem, blocks[2].Type)
	assert.Empty(t, blocks[2].Children())
}

func TestConvertListNestingFollowsIndentation(t *testing.T) {
	converter := markdown.NewConverter()

	doc := markdown.Document(strings.Join([]string{
		"* level0",
		"  * level1",
		"    * level2",
		"  * level1 again",
		"* level0 again",
	}, "\n"))

	blocks := converter.Convert(doc)
	require.Len(t, blocks, 2)

	root := blocks[0]
	require.Len(t, root.Children(), 2)
	level1 := root.Children()[0]
	assert.Equal(t, "level1", level1.PlainText())
	require.Len(t, level1.Children(), 1)
	assert.Equal(t, "level2", level1.Children()[0].PlainText())
	assert.Equal(t, "level1 again", root.Children()[1].PlainText())
	assert.Equal(t, "level0 again", blocks[1].PlainText())
}

func TestConvertListSurvivesBlankLines(t *testing.T) {
	converter := markdown.NewConverter()

	doc := markdown.Document(strings.Join([]string{
		"1. first",
		"",
		"2. second",
		"",
		"* bullets are a new list",
	}, "\n"))

	blocks := converter.Convert(doc)
	require.Len(t, blocks, 3)
	assert.Equal(t, notion.TypeNumberedListItem, blocks[0].Type)
	assert.Equal(t, notion.TypeNumberedListItem, blocks[1].Type)
	// Kind change after the blank line starts a fresh top-level list.
	assert.Equal(t, notion.TypeBulletedListItem, blocks[2].Type)
	assert.Empty(t, blocks[1].Children())
}

func TestConvertListContinuationMerge(t *testing.T) {
	converter := markdown.NewConverter()

	// A plain-text line directly after a list item merges into the item.
	doc := markdown.Document("* item text\ncontinuation text")
	blocks := converter.Convert(doc)
	require.Len(t, blocks, 1)
	assert.Equal(t, "item text continuation text", blocks[0].PlainText())
}

func TestConvertListContinuationDisabled(t *testing.T) {
	converter := markdown.NewConverter(markdown.WithoutContinuationMerge())

	doc := markdown.Document("* item text\ncontinuation text")
	blocks := converter.Convert(doc)
	require.Len(t, blocks, 2)
	assert.Equal(t, notion.TypeBulletedListItem, blocks[0].Type)
	assert.Equal(t, notion.TypeParagraph, blocks[1].Type)
}

func TestConvertCodeBlock(t *testing.T) {
	converter := markdown.NewConverter()

	doc := markdown.Document("```go\nfmt.Println(\"hi\")\n```\nafter")
	blocks := converter.Convert(doc)
	require.Len(t, blocks, 2)
	require.Equal(t, notion.TypeCode, blocks[0].Type)
	assert.Equal(t, "go", blocks[0].Code.Language)
	assert.Equal(t, "fmt.Println(\"hi\")", blocks[0].PlainText())
	assert.Equal(t, "after", blocks[1].PlainText())
}

func TestConvertCodeBlockDefaultLanguage(t *testing.T) {
	converter := markdown.NewConverter()

	blocks := converter.Convert(markdown.Document("```\nsome code\n```"))
	require.Len(t, blocks, 1)
	assert.Equal(t, "plain text", blocks[0].Code.Language)
}

func TestConvertTable(t *testing.T) {
	converter := markdown.NewConverter()

	doc := markdown.Document(strings.Join([]string{
		"| Form | Meaning |",
		"| ---- | ------- |",
		"| metaphor | implicit comparison |",
		"| simile |",
		"| a | b | c |",
	}, "\n"))

	blocks := converter.Convert(doc)
	require.Len(t, blocks, 1)
	table := blocks[0]
	require.Equal(t, notion.TypeTable, table.Type)
	assert.Equal(t, 2, table.Table.TableWidth)
	assert.True(t, table.Table.HasColumnHeader)

	rows := table.Children()
	require.Len(t, rows, 4) // header + 3 data rows; separator skipped
	for _, row := range rows {
		// Every row has exactly the header's column count:
		// short rows padded, long rows truncated.
		assert.Len(t, row.TableRow.Cells, 2)
	}
	assert.Equal(t, "Form", rows[0].TableRow.Cells[0][0].Text.Content)
	assert.Equal(t, "simile", rows[2].TableRow.Cells[0][0].Text.Content)
	assert.Equal(t, "", rows[2].TableRow.Cells[1][0].Text.Content)
	assert.Equal(t, "a", rows[3].TableRow.Cells[0][0].Text.Content)
	assert.Equal(t, "b", rows[3].TableRow.Cells[1][0].Text.Content)
}

func TestConvertSingleRowIsNotATable(t *testing.T) {
	converter := markdown.NewConverter()

	blocks := converter.Convert(markdown.Document("| lonely |"))
	require.Len(t, blocks, 1)
	assert.Equal(t, notion.TypeParagraph, blocks[0].Type)
}

func TestConvertFootnotes(t *testing.T) {
	converter := markdown.NewConverter()

	doc := markdown.Document(strings.Join([]string{
		"Some text[^1] here.",
		"",
		"[^1]: Some note",
	}, "\n"))

	blocks := converter.Convert(doc)
	require.Len(t, blocks, 4)

	// Inline reference renders as a superscript digit, no literal [^1] left.
	assert.Equal(t, "Some text¹ here.", blocks[0].PlainText())

	assert.Equal(t, notion.TypeDivider, blocks[1].Type)
	assert.Equal(t, notion.TypeHeading3, blocks[2].Type)
	assert.Equal(t, "Footnotes", blocks[2].PlainText())
	assert.Equal(t, "[1] Some note", blocks[3].PlainText())
}

func TestConvertFootnotesSortedNumerically(t *testing.T) {
	converter := markdown.NewConverter()

	doc := markdown.Document(strings.Join([]string{
		"body",
		"",
		"[^10]: tenth",
		"[^2]: second",
		"[^1]: first",
	}, "\n"))

	blocks := converter.Convert(doc)
	require.Len(t, blocks, 6)
	assert.Equal(t, "[1] first", blocks[3].PlainText())
	assert.Equal(t, "[2] second", blocks[4].PlainText())
	assert.Equal(t, "[10] tenth", blocks[5].PlainText())
}

func TestConvertSupTags(t *testing.T) {
	converter := markdown.NewConverter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"verse number", "<sup>16</sup>And it came to pass", "¹⁶And it came to pass"},
		{"bracketed footnote", "word<sup>[1]</sup>", "word⁽¹⁾"},
		{"combined", "<sup>16 [1]</sup>text", "¹⁶⁽¹⁾text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := converter.Convert(markdown.Document(tt.input))
			require.Len(t, blocks, 1)
			assert.Equal(t, tt.expected, blocks[0].PlainText())
		})
	}
}

func TestConvertTruncation(t *testing.T) {
	converter := markdown.NewConverter(markdown.WithMaxBlocks(5))

	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "paragraph", "")
	}
	blocks := converter.Convert(markdown.Document(strings.Join(lines, "\n")))

	require.Len(t, blocks, 5)
	last := blocks[4]
	assert.Equal(t, notion.TypeParagraph, last.Type)
	assert.Equal(t, markdown.TruncationNotice, last.PlainText())
}

func TestConvertBlankDocument(t *testing.T) {
	converter := markdown.NewConverter()
	assert.Empty(t, converter.Convert(markdown.EmptyDocument))
	assert.Empty(t, converter.Convert(markdown.Document("   \n\n  ")))
}

func TestConvertMixedDocument(t *testing.T) {
	converter := markdown.NewConverter()

	doc := markdown.Document(strings.Join([]string{
		"# Metaphor",
		"",
		"A metaphor is a **figure of speech**.",
		"",
		"> He is a lion.",
		"",
		"1. Identify the image.",
		"2. Identify the topic.",
		"",
		"See [Simile](../figs-simile/01.md).",
	}, "\n"))

	blocks := converter.Convert(doc)
	require.Len(t, blocks, 6)
	assert.Equal(t, notion.TypeHeading1, blocks[0].Type)
	assert.Equal(t, notion.TypeParagraph, blocks[1].Type)
	assert.Equal(t, notion.TypeQuote, blocks[2].Type)
	assert.Equal(t, notion.TypeNumberedListItem, blocks[3].Type)
	assert.Equal(t, notion.TypeNumberedListItem, blocks[4].Type)
	assert.Equal(t, notion.TypeParagraph, blocks[5].Type)

	// Unresolved link survives byte-identical.
	link := blocks[5].RichTextRuns()[1]
	require.NotNil(t, link.Text.Link)
	assert.Equal(t, "../figs-simile/01.md", link.Text.Link.URL)
}
