package markdown

import (
	"regexp"
	"strings"

	"github.com/door43-tools/tanotion/internal/notion"
)

// Resolver rewrites a raw link URL. Implementations map repository-relative
// article links to their migrated destination. Returning ok=false keeps the
// original URL untouched.
type Resolver interface {
	ResolveLink(url, linkText string) (resolved string, ok bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(url, linkText string) (string, bool)

func (f ResolverFunc) ResolveLink(url, linkText string) (string, bool) {
	return f(url, linkText)
}

var footnoteRefRegex = regexp.MustCompile(`^\[\^(\d+)\]`)

// InlineParser turns one logical line of markdown into rich text runs.
type InlineParser struct {
	resolver Resolver
}

func NewInlineParser(resolver Resolver) *InlineParser {
	return &InlineParser{resolver: resolver}
}

// Parse scans the text left to right, testing at each position for a bold
// pair, an italic pair, a footnote marker, and a link, in that order.
// Unmatched delimiters degrade to literal text. Adjacent plain runs are
// merged, so concatenating the runs always reconstructs the visible text.
func (p *InlineParser) Parse(input string) []notion.RichText {
	if input == "" {
		return []notion.RichText{notion.Text("")}
	}
	runs := p.scan(input, true)
	return mergePlainRuns(runs)
}

func (p *InlineParser) scan(input string, allowLinks bool) []notion.RichText {
	var runs []notion.RichText
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			runs = append(runs, notion.Text(plain.String()))
			plain.Reset()
		}
	}

	i := 0
	for i < len(input) {
		// Bold pair **...**
		if strings.HasPrefix(input[i:], "**") {
			if length := strings.Index(input[i+2:], "**"); length != -1 {
				flush()
				runs = append(runs, notion.BoldText(input[i+2:i+2+length]))
				i += length + 4
				continue
			}
			// No closing delimiter: both asterisks are literal.
		}

		// Italic pair *...*, rejecting an asterisk that belongs to a bold pair
		if input[i] == '*' && (i == 0 || input[i-1] != '*') && (i+1 >= len(input) || input[i+1] != '*') {
			if end := closingItalic(input, i+1); end != -1 {
				flush()
				runs = append(runs, notion.ItalicText(input[i+1:end]))
				i = end + 1
				continue
			}
		}

		// Italic pair _..._ at word boundaries
		if input[i] == '_' && underscoreOpens(input, i) {
			if end := closingUnderscore(input, i+1); end != -1 {
				flush()
				runs = append(runs, notion.ItalicText(input[i+1:end]))
				i = end + 1
				continue
			}
		}

		// Footnote marker [^n] renders as superscript digits
		if strings.HasPrefix(input[i:], "[^") {
			if groups := footnoteRefRegex.FindStringSubmatch(input[i:]); groups != nil {
				plain.WriteString(ToSuperscript(groups[1]))
				i += len(groups[0])
				continue
			}
		}

		// Link [text](url)
		if allowLinks && input[i] == '[' {
			if linkRuns, width := p.parseLink(input[i:]); width > 0 {
				flush()
				runs = append(runs, linkRuns...)
				i += width
				continue
			}
		}

		plain.WriteByte(input[i])
		i++
	}
	flush()
	return runs
}

// parseLink parses a [text](url) construct at the start of input and
// returns the runs plus the number of bytes consumed (0 if not a link).
// The link text may itself carry bold/italic formatting; the URL is
// attached to every resulting run.
func (p *InlineParser) parseLink(input string) ([]notion.RichText, int) {
	bracketEnd := strings.Index(input, "]")
	if bracketEnd == -1 || bracketEnd+1 >= len(input) || input[bracketEnd+1] != '(' {
		return nil, 0
	}
	parenEnd := strings.Index(input[bracketEnd+2:], ")")
	if parenEnd == -1 {
		return nil, 0
	}
	linkText := input[1:bracketEnd]
	linkURL := input[bracketEnd+2 : bracketEnd+2+parenEnd]

	finalURL := linkURL
	resolved := false
	if p.resolver != nil {
		if url, ok := p.resolver.ResolveLink(linkURL, linkText); ok {
			finalURL = url
			resolved = true
		}
	}

	runs := mergePlainRuns(p.scan(linkText, false))
	for idx := range runs {
		runs[idx].Text.Link = &notion.Link{URL: finalURL}
		if resolved {
			// Internal links are styled blue to stand out from external ones.
			if runs[idx].Annotations == nil {
				runs[idx].Annotations = &notion.Annotations{}
			}
			runs[idx].Annotations.Color = "blue"
		}
	}
	return runs, bracketEnd + 2 + parenEnd + 1
}

// closingItalic finds the next single asterisk, rejecting one that opens
// or closes a bold pair.
func closingItalic(input string, from int) int {
	end := strings.IndexByte(input[from:], '*')
	if end == -1 {
		return -1
	}
	end += from
	if end+1 < len(input) && input[end+1] == '*' {
		return -1
	}
	return end
}

func underscoreOpens(input string, i int) bool {
	if i > 0 && isWordByte(input[i-1]) {
		return false
	}
	if i+1 >= len(input) {
		return false
	}
	next := input[i+1]
	return next != ' ' && next != '\t' && next != '_'
}

func closingUnderscore(input string, from int) int {
	for j := from; j < len(input); j++ {
		if input[j] != '_' {
			continue
		}
		if input[j-1] == ' ' || input[j-1] == '\t' {
			continue
		}
		if j+1 < len(input) && isWordByte(input[j+1]) {
			continue
		}
		return j
	}
	return -1
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// mergePlainRuns collapses adjacent unannotated, unlinked runs into one,
// so no two neighbors are both plain text.
func mergePlainRuns(runs []notion.RichText) []notion.RichText {
	var merged []notion.RichText
	for _, run := range runs {
		if len(merged) > 0 && run.IsPlain() && merged[len(merged)-1].IsPlain() {
			merged[len(merged)-1].Text.Content += run.Text.Content
			continue
		}
		merged = append(merged, run)
	}
	return merged
}
