package console_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/door43-tools/tanotion/pkg/console"
	"github.com/stretchr/testify/assert"
)

func TestProgressLog(t *testing.T) {
	var buf bytes.Buffer
	progress := console.NewProgressLog(4,
		console.ToWriter(&buf),
		console.LineLength(40))

	progress.Log(2, "translate/figs-metaphor")
	output := buf.String()
	assert.Contains(t, output, "(2/4)")
	assert.Contains(t, output, "translate/figs-metaphor")
	assert.True(t, strings.HasSuffix(output, "\r"))
}

func TestProgressLogPercent(t *testing.T) {
	var buf bytes.Buffer
	progress := console.NewProgressLog(200,
		console.ToWriter(&buf),
		console.HideBar(),
		console.ShowPercent())

	progress.Log(50, "checking/acceptable")
	assert.Contains(t, buf.String(), "( 25%)")
}

func TestProgressLogClear(t *testing.T) {
	var buf bytes.Buffer
	progress := console.NewProgressLog(2, console.ToWriter(&buf), console.LineLength(30))

	progress.Log(1, "intro/ta-intro")
	progress.Clear("Done: 2 articles migrated")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "Done: 2 articles migrated")
}
