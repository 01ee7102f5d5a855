package faq

import (
	"fmt"
	"strings"

	"github.com/sreehariX/sarcv2/internal/render"
)

// Document is the rendered FAQ text plus the line offset of each entry.
// Anchor i is where a scroll request for entry i lands.
type Document struct {
	Content string
	Anchors []int
}

// BuildDocument renders entries into a single scrollable document.
// Each entry renders independently so its anchor line is exact.
func BuildDocument(entries []Entry, width int) Document {
	if width < 20 {
		width = 20
	}

	var sb strings.Builder
	anchors := make([]int, 0, len(entries))
	line := 0
	lastCategory := ""

	for _, entry := range entries {
		block := entryMarkdown(entry, entry.Category != lastCategory)
		lastCategory = entry.Category

		rendered, err := render.MarkdownWithWidth(block, width)
		if err != nil {
			rendered = block
		}
		rendered = strings.TrimRight(rendered, "\n") + "\n"

		anchors = append(anchors, line)
		sb.WriteString(rendered)
		line += strings.Count(rendered, "\n")
	}

	return Document{Content: sb.String(), Anchors: anchors}
}

// entryMarkdown shapes one entry; the category heading appears only on
// the first entry of its group.
func entryMarkdown(entry Entry, withCategory bool) string {
	var sb strings.Builder
	if withCategory {
		sb.WriteString(fmt.Sprintf("## %s\n\n", entry.Category))
	}
	sb.WriteString(fmt.Sprintf("**%s**\n\n%s\n", entry.Question, entry.Answer))
	return sb.String()
}
