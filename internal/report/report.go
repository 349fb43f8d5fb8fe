// Package report renders pipeline results as a Markdown document.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

const (
	wrapWidth      = 120
	descPreviewLen = 160
	draftSentences = 8
)

// Render produces the full Markdown report for one pipeline run.
func Render(data engine.ReportData) string {
	var b strings.Builder

	b.WriteString("# YouTube High-Relevance Video Transcripts\n\n")
	if data.Query != "" {
		fmt.Fprintf(&b, "- Query: %s\n", data.Query)
	}
	if len(data.Keywords) > 0 {
		fmt.Fprintf(&b, "- Keywords: %s\n", strings.Join(data.Keywords, ", "))
	}
	fmt.Fprintf(&b, "- Source: %s\n", data.Source)
	fmt.Fprintf(&b, "- Selected videos: %d\n\n", len(data.Videos))

	b.WriteString("## Ranked Videos\n\n")
	for i, v := range data.Videos {
		fmt.Fprintf(&b, "%d. [%s](%s) (score=%d)\n", i+1, v.Title, v.URL, v.Score)
		if v.Channel != "" {
			fmt.Fprintf(&b, "   - Channel: %s\n", v.Channel)
		}
		if v.Description != "" {
			fmt.Fprintf(&b, "   - %s\n", engine.TruncateAtWord(v.Description, descPreviewLen))
		}
	}
	b.WriteString("\n## Transcripts\n")

	for i, item := range data.Items {
		v := item.Video
		fmt.Fprintf(&b, "\n### %d. %s\n\n", i+1, v.Title)
		fmt.Fprintf(&b, "- URL: %s\n", v.URL)
		fmt.Fprintf(&b, "- Score: %d\n", v.Score)
		published := v.Published
		if published == "" {
			published = "N/A"
		}
		fmt.Fprintf(&b, "- Published: %s\n", published)

		if item.Transcript == nil {
			b.WriteString("- Transcript: unavailable\n")
			continue
		}
		tr := item.Transcript
		fmt.Fprintf(&b, "- Language: %s\n", tr.Language)
		fmt.Fprintf(&b, "- Method: %s\n", tr.Method)

		if draft := engine.Draft(tr.Text, data.Keywords, draftSentences); draft != "" {
			b.WriteString("\n#### 文案草稿\n\n```text\n")
			b.WriteString(wrap(draft, wrapWidth))
			b.WriteString("\n```\n")
		}

		b.WriteString("\n```text\n")
		b.WriteString(wrap(tr.Text, wrapWidth))
		b.WriteString("\n```\n")
	}
	return b.String()
}

// Write renders the report and writes it to path, creating parent
// directories as needed.
func Write(path string, data engine.ReportData) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(Render(data)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// wrap greedily wraps text at word boundaries. Words longer than the limit
// stay on their own line unbroken.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	var b strings.Builder
	lineLen := 0
	for _, w := range words {
		wl := len([]rune(w))
		switch {
		case lineLen == 0:
			b.WriteString(w)
			lineLen = wl
		case lineLen+1+wl > width:
			b.WriteByte('\n')
			b.WriteString(w)
			lineLen = wl
		default:
			b.WriteByte(' ')
			b.WriteString(w)
			lineLen += 1 + wl
		}
	}
	return b.String()
}
