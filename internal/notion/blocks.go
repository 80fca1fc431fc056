// Package notion implements the block data model and the REST client for
// the Notion API, the sink of the migration.
package notion

import "strings"

type BlockType string

const (
	TypeParagraph        BlockType = "paragraph"
	TypeHeading1         BlockType = "heading_1"
	TypeHeading2         BlockType = "heading_2"
	TypeHeading3         BlockType = "heading_3"
	TypeQuote            BlockType = "quote"
	TypeBulletedListItem BlockType = "bulleted_list_item"
	TypeNumberedListItem BlockType = "numbered_list_item"
	TypeCode             BlockType = "code"
	TypeTable            BlockType = "table"
	TypeTableRow         BlockType = "table_row"
	TypeDivider          BlockType = "divider"
	TypeCallout          BlockType = "callout"
	TypeToggle           BlockType = "toggle"
)

// Block is one structural unit of page content. Exactly one of the
// per-type payload fields is set, matching the Notion block JSON schema.
type Block struct {
	Object      string    `json:"object,omitempty"`
	ID          string    `json:"id,omitempty"`
	Type        BlockType `json:"type"`
	HasChildren bool      `json:"has_children,omitempty"`

	Paragraph        *RichTextContent `json:"paragraph,omitempty"`
	Heading1         *HeadingContent  `json:"heading_1,omitempty"`
	Heading2         *HeadingContent  `json:"heading_2,omitempty"`
	Heading3         *HeadingContent  `json:"heading_3,omitempty"`
	Quote            *RichTextContent `json:"quote,omitempty"`
	BulletedListItem *RichTextContent `json:"bulleted_list_item,omitempty"`
	NumberedListItem *RichTextContent `json:"numbered_list_item,omitempty"`
	Code             *CodeContent     `json:"code,omitempty"`
	Table            *TableContent    `json:"table,omitempty"`
	TableRow         *TableRowContent `json:"table_row,omitempty"`
	Divider          *DividerContent  `json:"divider,omitempty"`
	Callout          *CalloutContent  `json:"callout,omitempty"`
	Toggle           *RichTextContent `json:"toggle,omitempty"`
}

type RichTextContent struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
	Children []*Block   `json:"children,omitempty"`
}

type HeadingContent struct {
	RichText     []RichText `json:"rich_text"`
	IsToggleable bool       `json:"is_toggleable,omitempty"`
	Children     []*Block   `json:"children,omitempty"`
}

type CodeContent struct {
	RichText []RichText `json:"rich_text"`
	Language string     `json:"language"`
}

type TableContent struct {
	TableWidth      int      `json:"table_width"`
	HasColumnHeader bool     `json:"has_column_header"`
	HasRowHeader    bool     `json:"has_row_header"`
	Children        []*Block `json:"children,omitempty"`
}

type TableRowContent struct {
	Cells [][]RichText `json:"cells"`
}

type DividerContent struct{}

type CalloutContent struct {
	RichText []RichText `json:"rich_text"`
	Icon     *Icon      `json:"icon,omitempty"`
	Color    string     `json:"color,omitempty"`
}

type Icon struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji"`
}

// RichText is a contiguous span of text sharing the same annotations and
// optional link.
type RichText struct {
	Type        string       `json:"type"`
	Text        TextContent  `json:"text"`
	Annotations *Annotations `json:"annotations,omitempty"`
	PlainText   string       `json:"plain_text,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

type Link struct {
	URL string `json:"url"`
}

type Annotations struct {
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	Color  string `json:"color,omitempty"`
}

/*
 * Rich text constructors
 */

func Text(content string) RichText {
	return RichText{Type: "text", Text: TextContent{Content: content}}
}

func BoldText(content string) RichText {
	return RichText{Type: "text", Text: TextContent{Content: content}, Annotations: &Annotations{Bold: true}}
}

func ItalicText(content string) RichText {
	return RichText{Type: "text", Text: TextContent{Content: content}, Annotations: &Annotations{Italic: true}}
}

func LinkText(content, url string) RichText {
	return RichText{Type: "text", Text: TextContent{Content: content, Link: &Link{URL: url}}}
}

// IsPlain returns if the run carries no annotation and no link,
// i.e. it can be merged with an adjacent plain run.
func (r RichText) IsPlain() bool {
	if r.Text.Link != nil {
		return false
	}
	if r.Annotations == nil {
		return true
	}
	return !r.Annotations.Bold && !r.Annotations.Italic && r.Annotations.Color == ""
}

/*
 * Block constructors
 */

func NewParagraph(runs []RichText) *Block {
	return &Block{Object: "block", Type: TypeParagraph, Paragraph: &RichTextContent{RichText: runs}}
}

func NewHeading(level int, runs []RichText) *Block {
	switch level {
	case 1:
		return &Block{Object: "block", Type: TypeHeading1, Heading1: &HeadingContent{RichText: runs}}
	case 2:
		return &Block{Object: "block", Type: TypeHeading2, Heading2: &HeadingContent{RichText: runs}}
	default:
		return &Block{Object: "block", Type: TypeHeading3, Heading3: &HeadingContent{RichText: runs}}
	}
}

func NewQuote(runs []RichText) *Block {
	return &Block{Object: "block", Type: TypeQuote, Quote: &RichTextContent{RichText: runs}}
}

func NewBulletedListItem(runs []RichText) *Block {
	return &Block{Object: "block", Type: TypeBulletedListItem, BulletedListItem: &RichTextContent{RichText: runs}}
}

func NewNumberedListItem(runs []RichText) *Block {
	return &Block{Object: "block", Type: TypeNumberedListItem, NumberedListItem: &RichTextContent{RichText: runs}}
}

func NewCode(content, language string) *Block {
	return &Block{Object: "block", Type: TypeCode, Code: &CodeContent{
		RichText: []RichText{Text(content)},
		Language: language,
	}}
}

func NewDivider() *Block {
	return &Block{Object: "block", Type: TypeDivider, Divider: &DividerContent{}}
}

func NewCallout(runs []RichText, emoji, color string) *Block {
	return &Block{Object: "block", Type: TypeCallout, Callout: &CalloutContent{
		RichText: runs,
		Icon:     &Icon{Type: "emoji", Emoji: emoji},
		Color:    color,
	}}
}

func NewToggle(runs []RichText) *Block {
	return &Block{Object: "block", Type: TypeToggle, Toggle: &RichTextContent{RichText: runs, Color: "default"}}
}

func NewTable(width int, rows []*Block) *Block {
	return &Block{Object: "block", Type: TypeTable, Table: &TableContent{
		TableWidth:      width,
		HasColumnHeader: true,
		Children:        rows,
	}}
}

func NewTableRow(cells [][]RichText) *Block {
	return &Block{Object: "block", Type: TypeTableRow, TableRow: &TableRowContent{Cells: cells}}
}

/*
 * Accessors
 */

// Content returns the rich-text payload shared by the block types that
// carry runs and children, or nil for types with a different payload.
func (b *Block) Content() *RichTextContent {
	switch b.Type {
	case TypeParagraph:
		return b.Paragraph
	case TypeQuote:
		return b.Quote
	case TypeBulletedListItem:
		return b.BulletedListItem
	case TypeNumberedListItem:
		return b.NumberedListItem
	case TypeToggle:
		return b.Toggle
	}
	return nil
}

// RichTextRuns returns the runs of any block type carrying rich text.
func (b *Block) RichTextRuns() []RichText {
	if content := b.Content(); content != nil {
		return content.RichText
	}
	switch b.Type {
	case TypeHeading1:
		return b.Heading1.RichText
	case TypeHeading2:
		return b.Heading2.RichText
	case TypeHeading3:
		return b.Heading3.RichText
	case TypeCode:
		return b.Code.RichText
	case TypeCallout:
		return b.Callout.RichText
	}
	return nil
}

// SetRichTextRuns replaces the runs of a block previously read with
// RichTextRuns. Used by the link post-processing pass.
func (b *Block) SetRichTextRuns(runs []RichText) {
	if content := b.Content(); content != nil {
		content.RichText = runs
		return
	}
	switch b.Type {
	case TypeHeading1:
		b.Heading1.RichText = runs
	case TypeHeading2:
		b.Heading2.RichText = runs
	case TypeHeading3:
		b.Heading3.RichText = runs
	case TypeCode:
		b.Code.RichText = runs
	case TypeCallout:
		b.Callout.RichText = runs
	}
}

// AppendChild attaches a child block. Block types without nesting
// support ignore the call.
func (b *Block) AppendChild(child *Block) {
	if b.Type == TypeTable {
		b.Table.Children = append(b.Table.Children, child)
		return
	}
	if heading := b.heading(); heading != nil {
		heading.Children = append(heading.Children, child)
		return
	}
	if content := b.Content(); content != nil {
		content.Children = append(content.Children, child)
	}
}

// Children returns the nested blocks, regardless of the block type.
func (b *Block) Children() []*Block {
	if b.Type == TypeTable {
		return b.Table.Children
	}
	if heading := b.heading(); heading != nil {
		return heading.Children
	}
	if content := b.Content(); content != nil {
		return content.Children
	}
	return nil
}

// DetachChildren removes and returns the nested blocks. Table rows stay
// attached: the sink requires them inline at creation time.
func (b *Block) DetachChildren() []*Block {
	if b.Type == TypeTable {
		return nil
	}
	if heading := b.heading(); heading != nil {
		children := heading.Children
		heading.Children = nil
		return children
	}
	if content := b.Content(); content != nil {
		children := content.Children
		content.Children = nil
		return children
	}
	return nil
}

func (b *Block) heading() *HeadingContent {
	switch b.Type {
	case TypeHeading1:
		return b.Heading1
	case TypeHeading2:
		return b.Heading2
	case TypeHeading3:
		return b.Heading3
	}
	return nil
}

// PlainText reconstructs the visible text of the block by concatenating
// the content of all runs.
func (b *Block) PlainText() string {
	var sb strings.Builder
	for _, run := range b.RichTextRuns() {
		sb.WriteString(run.Text.Content)
	}
	return sb.String()
}
