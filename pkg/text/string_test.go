package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   "))
	assert.True(t, IsBlank("\t \t"))
	assert.False(t, IsBlank("  text  "))
}

func TestIndentation(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected int
	}{
		{"no indent", "item", 0},
		{"two spaces", "  item", 2},
		{"four spaces", "    item", 4},
		{"tab", "\titem", 1},
		{"blank line", "   ", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Indentation(tt.line))
		})
	}
}

func TestPrefixCount(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected int
	}{
		{"no prefix", "text", 0},
		{"single quote", "> text", 1},
		{"nested quote", "> > text", 2},
		{"compact nested quote", ">> text", 2},
		{"triple", "> > > deep", 3},
		{"bare marker", ">", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PrefixCount(tt.line, '>'))
		})
	}
}
