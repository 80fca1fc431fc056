package markdown

import (
	"regexp"
	"strings"
)

// The corpus is uncurated documentation markdown with leftover HTML.
// These transformers clean it up before block conversion. None of them
// can fail: malformed constructs pass through unchanged.

var superscriptDigits = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
}

// ToSuperscript converts the digits of a string to their Unicode
// superscript equivalent. Non-digit characters are kept as is.
func ToSuperscript(digits string) string {
	var sb strings.Builder
	for _, r := range digits {
		if sup, ok := superscriptDigits[r]; ok {
			sb.WriteRune(sup)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

var (
	supCombinedRegex = regexp.MustCompile(`<sup>\s*(\d+)\s*\[\s*(\d+)\s*\]\s*</sup>`)
	supBracketRegex  = regexp.MustCompile(`<sup>\s*\[\s*(\d+)\s*\]\s*</sup>`)
	supPlainRegex    = regexp.MustCompile(`<sup>\s*(.*?)\s*</sup>`)
)

// ReplaceSupTags converts HTML <sup> tags to Unicode superscript.
// Three forms occur in the corpus: verse numbers (<sup>16</sup>),
// bracketed footnotes (<sup>[1]</sup>), and both combined
// (<sup>16 [1]</sup> becomes ¹⁶⁽¹⁾).
func ReplaceSupTags() Transformer {
	return func(document Document) Document {
		md := string(document)
		md = supCombinedRegex.ReplaceAllStringFunc(md, func(match string) string {
			groups := supCombinedRegex.FindStringSubmatch(match)
			return ToSuperscript(groups[1]) + "⁽" + ToSuperscript(groups[2]) + "⁾"
		})
		md = supBracketRegex.ReplaceAllStringFunc(md, func(match string) string {
			groups := supBracketRegex.FindStringSubmatch(match)
			return "⁽" + ToSuperscript(groups[1]) + "⁾"
		})
		md = supPlainRegex.ReplaceAllStringFunc(md, func(match string) string {
			groups := supPlainRegex.FindStringSubmatch(match)
			return ToSuperscript(groups[1])
		})
		return Document(md)
	}
}

// ReplaceLineBreakTags converts HTML <br> variants to newlines.
func ReplaceLineBreakTags() Transformer {
	return func(document Document) Document {
		md := string(document)
		for _, tag := range []string{"<br>", "<br/>", "<br />"} {
			md = strings.ReplaceAll(md, tag, "\n")
		}
		return Document(md)
	}
}

// UnescapeBrackets unescapes literal \[ and \] sequences so that escaped
// footnote markers are parsed like regular ones.
func UnescapeBrackets() Transformer {
	return func(document Document) Document {
		md := string(document)
		md = strings.ReplaceAll(md, `\[`, "[")
		md = strings.ReplaceAll(md, `\]`, "]")
		return Document(md)
	}
}

// FixLiteralNewlines converts stray literal \n sequences (an artifact of
// doubly-escaped source files) to actual line breaks.
func FixLiteralNewlines() Transformer {
	return func(document Document) Document {
		return Document(strings.ReplaceAll(string(document), `\n`, "\n"))
	}
}

var htmlCommentRegex = regexp.MustCompile(`(?s)<!--.+?-->`)

// StripHTMLComments removes HTML comments from a document.
func StripHTMLComments() Transformer {
	return func(document Document) Document {
		return Document(htmlCommentRegex.ReplaceAllString(string(document), ""))
	}
}
