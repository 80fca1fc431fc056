package text

import (
	"strings"
)

type Line struct {
	Text   string
	Number int
}

// Null Object pattern.
// Useful so Peek past the end still supports IsBlank() checks.
var MissingLine = Line{
	Text:   "",
	Number: -1,
}

func (l Line) IsBlank() bool {
	return IsBlank(l.Text)
}

// Indent returns the indentation width of the line.
func (l Line) Indent() int {
	return Indentation(l.Text)
}

// LineIterator implements the Iterator pattern to iterate over text lines.
type LineIterator struct {
	index int
	lines []Line
}

func (l *LineIterator) HasNext() bool {
	return l.index < len(l.lines)
}

// Same as Next but does not move the iterator
func (l *LineIterator) Peek() Line {
	if l.HasNext() {
		return l.lines[l.index]
	}
	return MissingLine
}

// PeekNonBlank returns the next non-blank line without moving the iterator.
// Useful for list-continuation decisions where blank lines do not always
// terminate the list.
func (l *LineIterator) PeekNonBlank() Line {
	for i := l.index; i < len(l.lines); i++ {
		if !l.lines[i].IsBlank() {
			return l.lines[i]
		}
	}
	return MissingLine
}

func (l *LineIterator) Next() Line {
	if l.HasNext() {
		line := l.lines[l.index]
		l.index++
		return line
	}
	return MissingLine
}

func NewLineIteratorFromText(text string) *LineIterator {
	rawLines := strings.Split(text, "\n")

	lines := make([]Line, 0, len(rawLines))
	for i, line := range rawLines {
		lines = append(lines, Line{
			Number: i + 1,
			Text:   line,
		})
	}

	return &LineIterator{
		index: 0,
		lines: lines,
	}
}
