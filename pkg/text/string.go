package text

import (
	"strings"
)

// IsBlank returns if a text is blank.
func IsBlank(text string) bool {
	return len(strings.TrimSpace(text)) == 0
}

// Indentation returns the number of leading whitespace characters.
// Tabs count as one character, like the migration scripts this tool replaces.
func Indentation(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// PrefixCount returns how many times prefix repeats at the start of line,
// ignoring interleaved spaces. Ex: PrefixCount("> > quote", '>') == 2.
func PrefixCount(line string, prefix byte) int {
	count := 0
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == prefix:
			count++
		case line[i] == ' ' || line[i] == '\t':
			continue
		default:
			return count
		}
	}
	return count
}
