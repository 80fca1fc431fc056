package console

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ProgressLog rewrites a single output line to report migration progress
// without flooding the terminal during long article loops.
type ProgressLog struct {
	output        io.Writer
	showBar       bool
	showPercent   bool
	maxSteps      int
	maxCharacters int
}

func NewProgressLog(maxSteps int, options ...func(*ProgressLog)) *ProgressLog {
	result := &ProgressLog{
		output:        os.Stdout,
		showPercent:   false,
		showBar:       true,
		maxSteps:      maxSteps,
		maxCharacters: 80,
	}
	for _, option := range options {
		option(result)
	}
	return result
}

func ToWriter(w io.Writer) func(*ProgressLog) {
	return func(p *ProgressLog) {
		p.output = w
	}
}

func HideBar() func(*ProgressLog) {
	return func(p *ProgressLog) {
		p.showBar = false
	}
}

func ShowPercent() func(*ProgressLog) {
	return func(p *ProgressLog) {
		p.showPercent = true
	}
}

func LineLength(characters int) func(*ProgressLog) {
	return func(p *ProgressLog) {
		p.maxCharacters = characters
	}
}

func (p *ProgressLog) Log(currentStep int, message string) {
	percent := currentStep * 100 / p.maxSteps
	tenth := percent / 10

	var sb strings.Builder
	if p.showBar {
		sb.WriteString(strings.Repeat("#", tenth))
		sb.WriteString(strings.Repeat(" ", 10-tenth))
		sb.WriteRune(' ')
	}
	if p.showPercent {
		sb.WriteString(fmt.Sprintf("(%3d%%) ", percent))
	} else {
		sb.WriteString(fmt.Sprintf("(%d/%d) ", currentStep, p.maxSteps))
	}
	sb.WriteString(message)

	line := sb.String()
	if len(line) > p.maxCharacters {
		line = line[0:p.maxCharacters]
	}
	line += strings.Repeat(" ", p.maxCharacters-len(line))

	fmt.Fprint(p.output, line, "\r")
}

// Clear replaces the progress line with a final message (or erases it).
func (p *ProgressLog) Clear(newMessage string) {
	line := newMessage
	if len(line) > p.maxCharacters {
		line = line[0:p.maxCharacters]
	}
	line += strings.Repeat(" ", p.maxCharacters-len(line))

	fmt.Fprint(p.output, line)
	if newMessage == "" {
		fmt.Fprint(p.output, "\r")
	} else {
		fmt.Fprint(p.output, "\n")
	}
}
