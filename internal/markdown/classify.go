package markdown

import (
	"regexp"
	"strings"

	"github.com/door43-tools/tanotion/pkg/text"
)

// LineKind tags what a single markdown line starts.
type LineKind int

const (
	KindBlank LineKind = iota
	KindHeading
	KindQuote
	KindBulletedItem
	KindNumberedItem
	KindCodeFence
	KindTableRow
	KindFootnoteDef
	KindText
)

// Classification is the result of classifying one line. Only the fields
// relevant to the Kind are set.
type Classification struct {
	Kind    LineKind
	Content string // text after the block marker

	HeadingLevel int    // KindHeading, 1-based, not clamped
	QuoteDepth   int    // KindQuote, number of leading '>'
	Indent       int    // KindBulletedItem/KindNumberedItem, leading whitespace width
	Language     string // KindCodeFence, optional language tag
	FootnoteKey  string // KindFootnoteDef, the numeric key
}

var (
	numberedDotRegex   = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)
	numberedParenRegex = regexp.MustCompile(`^\((\d+)\)\s+(.*)$`)
	footnoteDefRegex   = regexp.MustCompile(`^\[\^(\d+)\]:\s*(.*)$`)
)

// Classify tags a line based solely on its leading characters and
// indentation. Unrecognized lines always fall through to KindText;
// there are no error conditions.
func Classify(line string) Classification {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Classification{Kind: KindBlank}
	}

	if strings.HasPrefix(trimmed, "#") {
		level := 0
		for level < len(trimmed) && trimmed[level] == '#' {
			level++
		}
		if level < len(trimmed) && trimmed[level] == ' ' {
			return Classification{
				Kind:         KindHeading,
				HeadingLevel: level,
				Content:      strings.TrimSpace(trimmed[level:]),
			}
		}
		// A run of '#' without a following space is plain text.
		return Classification{Kind: KindText, Content: trimmed}
	}

	if strings.HasPrefix(trimmed, ">") {
		depth := text.PrefixCount(trimmed, '>')
		content := trimmed
		for i := 0; i < depth; i++ {
			content = strings.TrimLeft(strings.TrimPrefix(content, ">"), " \t")
			// PrefixCount counted only '>' separated by spaces, so the
			// prefix is always present here.
		}
		return Classification{Kind: KindQuote, QuoteDepth: depth, Content: content}
	}

	if strings.HasPrefix(trimmed, "```") {
		return Classification{
			Kind:     KindCodeFence,
			Language: strings.TrimSpace(trimmed[3:]),
		}
	}

	if strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") && len(trimmed) > 1 {
		return Classification{Kind: KindTableRow, Content: trimmed}
	}

	if groups := footnoteDefRegex.FindStringSubmatch(trimmed); groups != nil {
		return Classification{Kind: KindFootnoteDef, FootnoteKey: groups[1], Content: groups[2]}
	}

	if strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "- ") {
		return Classification{
			Kind:    KindBulletedItem,
			Indent:  text.Indentation(line),
			Content: strings.TrimSpace(trimmed[2:]),
		}
	}

	if groups := numberedDotRegex.FindStringSubmatch(trimmed); groups != nil {
		return Classification{Kind: KindNumberedItem, Indent: text.Indentation(line), Content: groups[2]}
	}
	if groups := numberedParenRegex.FindStringSubmatch(trimmed); groups != nil {
		return Classification{Kind: KindNumberedItem, Indent: text.Indentation(line), Content: groups[2]}
	}

	return Classification{Kind: KindText, Content: trimmed}
}

// IsListItem returns if the classification is a list item of either kind.
func (c Classification) IsListItem() bool {
	return c.Kind == KindBulletedItem || c.Kind == KindNumberedItem
}

// BreaksParagraph returns if a line of this kind interrupts paragraph
// accumulation. The historical parsers stopped a paragraph on any line
// whose first character looked like a block marker, even without the
// trailing space that a real marker requires.
func BreaksParagraph(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	switch trimmed[0] {
	case '#', '>', '*', '-', '|':
		return true
	}
	if strings.HasPrefix(trimmed, "```") {
		return true
	}
	if numberedDotRegex.MatchString(trimmed) || numberedParenRegex.MatchString(trimmed) {
		return true
	}
	return footnoteDefRegex.MatchString(trimmed)
}
