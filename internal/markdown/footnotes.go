package markdown

import (
	"strings"
)

// ExtractFootnotes removes footnote definitions ([^n]: text) from the
// document and returns the remaining body plus the collected notes keyed
// by their numeric label. A definition extends over following plain lines
// until a blank line or the next definition.
func ExtractFootnotes(document Document) (Document, map[string]string) {
	footnotes := make(map[string]string)

	var bodyLines []string
	var currentKey string

	for _, line := range document.Lines() {
		classification := Classify(line)

		if classification.Kind == KindFootnoteDef {
			currentKey = classification.FootnoteKey
			footnotes[currentKey] = classification.Content
			continue
		}
		if currentKey != "" && classification.Kind == KindText {
			footnotes[currentKey] = strings.TrimSpace(footnotes[currentKey] + " " + classification.Content)
			continue
		}
		currentKey = ""
		bodyLines = append(bodyLines, line)
	}

	if len(footnotes) == 0 {
		return document, nil
	}
	return Document(strings.Join(bodyLines, "\n")), footnotes
}
