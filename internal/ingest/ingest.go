// Package ingest normalizes raw digest input before segmentation. Digests
// pasted out of mail clients often arrive as HTML; those are reduced to
// visible text, one block element per line. Plain text only gets its line
// endings normalized.
package ingest

import (
	"strings"

	"golang.org/x/net/html"
)

// Normalize prepares digest input for the segmenter.
func Normalize(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	if looksLikeHTML(text) {
		if plain, err := htmlToText(text); err == nil {
			text = plain
		}
		// Unparseable markup falls through as-is; the segmenter tolerates it.
	}

	return text
}

func looksLikeHTML(text string) bool {
	head := strings.ToLower(text)
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "<html") || strings.Contains(head, "<body") ||
		strings.Contains(head, "<div") || strings.Contains(head, "<p>")
}

// blockTags force a line break around their content, so "1. Title" in a <p>
// and its bullets in an <li> land on separate lines.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "table": true, "blockquote": true,
}

func htmlToText(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
			if blockTags[n.Data] {
				buf.WriteByte('\n')
			}
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if buf.Len() > 0 && !strings.HasSuffix(buf.String(), "\n") {
					buf.WriteByte(' ')
				}
				buf.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && blockTags[n.Data] {
			buf.WriteByte('\n')
		}
	}
	walk(doc)

	// Collapse runs of blank lines left by nested block elements.
	var lines []string
	blank := false
	for _, line := range strings.Split(buf.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(lines) > 0 {
				lines = append(lines, "")
			}
			blank = true
			continue
		}
		blank = false
		lines = append(lines, line)
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n"), nil
}
