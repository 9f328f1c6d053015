package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLineEndings(t *testing.T) {
	got := Normalize("1. Deal one\r\nBody line\rMore body\n")
	assert.Equal(t, "1. Deal one\nBody line\nMore body\n", got)
}

func TestNormalizePlainTextUntouched(t *testing.T) {
	text := "Automotive\n\n1. Deal one\n* bullet\n"
	assert.Equal(t, text, Normalize(text))
}

func TestNormalizeHTML(t *testing.T) {
	raw := `<html><head><style>p { color: red }</style></head><body>
<p>Automotive</p>
<p>1. Supplier buys drivetrain maker</p>
<ul><li>* Family owners exit</li></ul>
<script>track();</script>
</body></html>`

	got := Normalize(raw)

	assert.Contains(t, got, "Automotive")
	assert.Contains(t, got, "1. Supplier buys drivetrain maker")
	assert.Contains(t, got, "* Family owners exit")
	assert.NotContains(t, got, "color: red")
	assert.NotContains(t, got, "track()")

	// Block elements land on their own lines.
	lines := strings.Split(got, "\n")
	found := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "Automotive" {
			found = true
		}
	}
	assert.True(t, found, "header should be its own line:\n%s", got)
}

func TestNormalizeHTMLCollapsesBlankRuns(t *testing.T) {
	raw := "<div><p>one</p></div><div><div><p>two</p></div></div>"
	got := Normalize(raw)

	assert.NotContains(t, got, "\n\n\n")
	assert.Contains(t, got, "one")
	assert.Contains(t, got, "two")
}

func TestLooksLikeHTML(t *testing.T) {
	assert.True(t, looksLikeHTML("<html><body>x</body></html>"))
	assert.True(t, looksLikeHTML("<div class=\"digest\">x</div>"))
	assert.False(t, looksLikeHTML("1. Deal one\nplain text about a <target> company"))
}
