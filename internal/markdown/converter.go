package markdown

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/door43-tools/tanotion/internal/notion"
	"github.com/door43-tools/tanotion/pkg/text"
)

// TruncationNotice is the visible paragraph inserted when a document
// exceeds the configured block budget.
const TruncationNotice = "⚠️ Content truncated: the original article exceeds the page size limit."

// Converter builds an ordered list of top-level Notion blocks from a
// markdown document. It never fails on malformed input: every branch
// degrades to the closest safe block type, usually a paragraph.
type Converter struct {
	inline *InlineParser

	// maxBlocks caps the number of top-level blocks (0 = unlimited).
	// Exceeding documents keep maxBlocks-1 blocks plus a notice paragraph.
	maxBlocks int

	// mergeContinuations preserves the historical behavior where an
	// unindented text line directly after a list item is appended to that
	// item instead of opening a new paragraph.
	mergeContinuations bool
}

type Option func(*Converter)

// WithResolver rewrites link URLs through the given resolver.
func WithResolver(resolver Resolver) Option {
	return func(c *Converter) {
		c.inline = NewInlineParser(resolver)
	}
}

// WithMaxBlocks truncates documents longer than limit top-level blocks.
func WithMaxBlocks(limit int) Option {
	return func(c *Converter) {
		c.maxBlocks = limit
	}
}

// WithoutContinuationMerge starts a new paragraph for text lines following
// a list item instead of merging them into the item.
func WithoutContinuationMerge() Option {
	return func(c *Converter) {
		c.mergeContinuations = false
	}
}

func NewConverter(options ...Option) *Converter {
	converter := &Converter{
		inline:             NewInlineParser(nil),
		mergeContinuations: true,
	}
	for _, option := range options {
		option(converter)
	}
	return converter
}

// openListItem tracks one list item currently accepting children.
type openListItem struct {
	kind   LineKind
	indent int
	block  *notion.Block
}

// Convert turns a markdown document into a tree of Notion blocks.
func (c *Converter) Convert(document Document) []*notion.Block {
	if document.IsBlank() {
		return nil
	}

	document = document.Transform(
		FixLiteralNewlines(),
		ReplaceLineBreakTags(),
		UnescapeBrackets(),
		ReplaceSupTags(),
		StripHTMLComments(),
	)

	body, footnotes := ExtractFootnotes(document)

	var blocks []*notion.Block
	var listStack []openListItem

	iterator := body.Iterator()
	for iterator.HasNext() {
		line := iterator.Peek()
		classification := Classify(line.Text)

		switch classification.Kind {

		case KindBlank:
			iterator.Next()
			// A blank line keeps the list open only when the next content
			// line is still a list item of the same kind at the same depth
			// or deeper.
			if len(listStack) > 0 {
				top := listStack[len(listStack)-1]
				next := Classify(iterator.PeekNonBlank().Text)
				if !next.IsListItem() || next.Kind != top.kind || next.Indent < top.indent {
					listStack = nil
				}
			}

		case KindHeading:
			iterator.Next()
			listStack = nil
			// The sink supports only three heading ranks: deeper markdown
			// headings collapse into level 3.
			level := classification.HeadingLevel
			if level > 3 {
				level = 3
			}
			blocks = append(blocks, notion.NewHeading(level, c.inline.Parse(classification.Content)))

		case KindQuote:
			listStack = nil
			blocks = append(blocks, c.convertBlockquotes(iterator)...)

		case KindCodeFence:
			iterator.Next()
			listStack = nil
			blocks = append(blocks, c.convertCodeBlock(iterator, classification.Language))

		case KindTableRow:
			listStack = nil
			if table := c.convertTable(iterator); table != nil {
				blocks = append(blocks, table)
			}

		case KindBulletedItem, KindNumberedItem:
			iterator.Next()
			item := c.newListItem(classification)

			// Pop items at the same indent or deeper: the new item is a
			// sibling (or uncle) of those, not a child.
			for len(listStack) > 0 && listStack[len(listStack)-1].indent >= classification.Indent {
				listStack = listStack[:len(listStack)-1]
			}
			if len(listStack) > 0 {
				listStack[len(listStack)-1].block.AppendChild(item)
			} else {
				blocks = append(blocks, item)
			}
			listStack = append(listStack, openListItem{
				kind:   classification.Kind,
				indent: classification.Indent,
				block:  item,
			})

		case KindFootnoteDef:
			// Definitions were extracted up front; a leftover one (multi-line
			// definition edge) degrades to a paragraph.
			iterator.Next()
			blocks = append(blocks, notion.NewParagraph(c.inline.Parse(line.Text)))

		default: // KindText
			if c.mergeContinuations && len(listStack) > 0 && line.Indent() >= listStack[len(listStack)-1].indent {
				iterator.Next()
				c.mergeIntoListItem(listStack[len(listStack)-1].block, classification.Content)
				continue
			}
			listStack = nil
			blocks = append(blocks, c.convertParagraph(iterator))
		}
	}

	blocks = append(blocks, c.footnoteBlocks(footnotes)...)

	if c.maxBlocks > 0 && len(blocks) > c.maxBlocks {
		blocks = blocks[:c.maxBlocks-1]
		blocks = append(blocks, notion.NewParagraph([]notion.RichText{notion.Text(TruncationNotice)}))
	}

	return blocks
}

func (c *Converter) newListItem(classification Classification) *notion.Block {
	runs := c.inline.Parse(classification.Content)
	if classification.Kind == KindNumberedItem {
		return notion.NewNumberedListItem(runs)
	}
	return notion.NewBulletedListItem(runs)
}

// mergeIntoListItem appends continuation text to the item, re-parsing the
// combined plain text. Inherited from the original parsers: formatting
// already applied to the item survives only as plain text.
func (c *Converter) mergeIntoListItem(item *notion.Block, continuation string) {
	combined := strings.TrimRight(item.PlainText(), " ") + " " + continuation
	item.Content().RichText = c.inline.Parse(combined)
}

// convertBlockquotes consumes consecutive '>'-prefixed lines. Lines are
// grouped by nesting depth: depth-1 groups become sibling quote blocks,
// deeper groups become children of the preceding shallower quote. A bare
// '>' yields a quote holding a single space, never an empty run.
func (c *Converter) convertBlockquotes(iterator *text.LineIterator) []*notion.Block {
	type depthGroup struct {
		depth int
		lines []string
	}
	var groups []depthGroup

	for iterator.HasNext() {
		classification := Classify(iterator.Peek().Text)
		if classification.Kind != KindQuote {
			break
		}
		iterator.Next()
		if len(groups) == 0 || groups[len(groups)-1].depth != classification.QuoteDepth {
			groups = append(groups, depthGroup{depth: classification.QuoteDepth})
		}
		groups[len(groups)-1].lines = append(groups[len(groups)-1].lines, classification.Content)
	}

	var blocks []*notion.Block
	var stack []*notion.Block // stack[d-1] = latest quote at depth d
	for _, group := range groups {
		content := strings.TrimSpace(strings.Join(group.lines, "\n"))
		var runs []notion.RichText
		if content == "" {
			// The sink rejects blocks with fully empty text.
			runs = []notion.RichText{notion.Text(" ")}
		} else {
			runs = c.inline.Parse(strings.Join(group.lines, "\n"))
		}
		quote := notion.NewQuote(runs)

		if group.depth > 1 && len(stack) >= group.depth-1 {
			stack[group.depth-2].AppendChild(quote)
		} else {
			blocks = append(blocks, quote)
		}
		if group.depth <= len(stack) {
			stack = stack[:group.depth-1]
		}
		stack = append(stack, quote)
	}
	return blocks
}

// convertCodeBlock consumes lines until the closing fence, which is
// consumed but not emitted. An unterminated fence swallows the rest of
// the document, matching the historical behavior.
func (c *Converter) convertCodeBlock(iterator *text.LineIterator, language string) *notion.Block {
	if language == "" {
		language = "plain text"
	}
	var lines []string
	for iterator.HasNext() {
		line := iterator.Next()
		if strings.HasPrefix(strings.TrimSpace(line.Text), "```") {
			break
		}
		lines = append(lines, line.Text)
	}
	return notion.NewCode(strings.Join(lines, "\n"), language)
}

// convertTable consumes consecutive table rows. The first row is the
// header; a separator row of dashes is skipped; data rows are padded or
// truncated to the header width. Fewer than two rows is not a table and
// degrades to a paragraph.
func (c *Converter) convertTable(iterator *text.LineIterator) *notion.Block {
	var rows []string
	for iterator.HasNext() {
		classification := Classify(iterator.Peek().Text)
		if classification.Kind != KindTableRow {
			break
		}
		iterator.Next()
		rows = append(rows, classification.Content)
	}
	if len(rows) == 0 {
		return nil
	}
	if len(rows) < 2 {
		return notion.NewParagraph(c.inline.Parse(rows[0]))
	}

	headers := splitTableRow(rows[0])
	dataStart := 1
	if isTableSeparator(rows[1]) {
		dataStart = 2
	}

	tableRows := []*notion.Block{notion.NewTableRow(c.parseCells(headers, len(headers)))}
	for _, row := range rows[dataStart:] {
		cells := splitTableRow(row)
		tableRows = append(tableRows, notion.NewTableRow(c.parseCells(cells, len(headers))))
	}
	return notion.NewTable(len(headers), tableRows)
}

func (c *Converter) parseCells(cells []string, width int) [][]notion.RichText {
	result := make([][]notion.RichText, 0, width)
	for i := 0; i < width; i++ {
		if i < len(cells) && cells[i] != "" {
			result = append(result, c.inline.Parse(cells[i]))
		} else {
			result = append(result, []notion.RichText{notion.Text("")})
		}
	}
	return result
}

func splitTableRow(row string) []string {
	parts := strings.Split(row, "|")
	// Leading and trailing pipes produce empty first/last fragments.
	if len(parts) >= 2 {
		parts = parts[1 : len(parts)-1]
	}
	cells := make([]string, 0, len(parts))
	for _, part := range parts {
		cells = append(cells, strings.TrimSpace(part))
	}
	return cells
}

func isTableSeparator(row string) bool {
	for _, r := range row {
		switch r {
		case '-', '|', ':', ' ':
		default:
			return false
		}
	}
	return true
}

// convertParagraph accumulates plain lines until a blank line or a line
// starting a different block type, then joins them with single spaces.
func (c *Converter) convertParagraph(iterator *text.LineIterator) *notion.Block {
	first := iterator.Next()
	lines := []string{strings.TrimSpace(first.Text)}
	for iterator.HasNext() {
		next := iterator.Peek()
		if BreaksParagraph(next.Text) {
			break
		}
		lines = append(lines, strings.TrimSpace(next.Text))
		iterator.Next()
	}
	return notion.NewParagraph(c.inline.Parse(strings.Join(lines, " ")))
}

// footnoteBlocks renders the collected footnotes as a trailing section:
// a divider, a "Footnotes" heading, and one paragraph per note sorted by
// numeric key.
func (c *Converter) footnoteBlocks(footnotes map[string]string) []*notion.Block {
	if len(footnotes) == 0 {
		return nil
	}
	keys := make([]string, 0, len(footnotes))
	for key := range footnotes {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})

	blocks := []*notion.Block{
		notion.NewDivider(),
		notion.NewHeading(3, []notion.RichText{notion.Text("Footnotes")}),
	}
	for _, key := range keys {
		content := fmt.Sprintf("[%s] %s", key, footnotes[key])
		blocks = append(blocks, notion.NewParagraph(c.inline.Parse(content)))
	}
	return blocks
}
