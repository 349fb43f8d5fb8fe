package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

func sampleData() engine.ReportData {
	video := engine.VideoCandidate{
		ID:          "aaaaaaaaaaa",
		Title:       "Michelin Star Review",
		URL:         "https://www.youtube.com/watch?v=aaaaaaaaaaa",
		Published:   "2026-02-01T10:00:00Z",
		Channel:     "Food Channel",
		Description: "Tasting menu walkthrough",
		Score:       6,
	}
	missing := engine.VideoCandidate{
		ID:    "bbbbbbbbbbb",
		Title: "Street Food Tour",
		URL:   "https://www.youtube.com/watch?v=bbbbbbbbbbb",
		Score: 4,
	}
	return engine.ReportData{
		Query:    "michelin food review",
		Keywords: []string{"michelin", "food review"},
		Source:   "youtube-feed",
		Videos:   []engine.VideoCandidate{video, missing},
		Items: []engine.VideoTranscript{
			{
				Video: video,
				Transcript: &engine.TranscriptResult{
					Language: "en",
					Text:     "The michelin tasting menu was exceptional. Service felt warm throughout.",
					Method:   "watch-page",
				},
			},
			{Video: missing},
		},
	}
}

func TestRender(t *testing.T) {
	out := Render(sampleData())

	wantLines := []string{
		"# YouTube High-Relevance Video Transcripts",
		"- Query: michelin food review",
		"- Keywords: michelin, food review",
		"- Source: youtube-feed",
		"- Selected videos: 2",
		"## Ranked Videos",
		"1. [Michelin Star Review](https://www.youtube.com/watch?v=aaaaaaaaaaa) (score=6)",
		"   - Channel: Food Channel",
		"## Transcripts",
		"### 1. Michelin Star Review",
		"- Language: en",
		"- Method: watch-page",
		"#### 文案草稿",
		"The michelin tasting menu was exceptional.",
		"### 2. Street Food Tour",
		"- Transcript: unavailable",
		"- Published: N/A",
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line) {
			t.Errorf("Render() output missing %q", line)
		}
	}
}

func TestRenderNoQuery(t *testing.T) {
	data := sampleData()
	data.Query = ""
	out := Render(data)
	if strings.Contains(out, "- Query:") {
		t.Error("Render() printed an empty query line")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{name: "fits on one line", text: "short text", width: 20, want: "short text"},
		{name: "wraps at word boundary", text: "one two three four", width: 9, want: "one two\nthree\nfour"},
		{name: "long word kept whole", text: "a verylongwordindeed b", width: 5, want: "a\nverylongwordindeed\nb"},
		{name: "empty", text: "", width: 10, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrap(tt.text, tt.width); got != tt.want {
				t.Errorf("wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.md")
	if err := Write(path, sampleData()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(body), "# YouTube High-Relevance Video Transcripts") {
		t.Error("written report missing header")
	}
}
