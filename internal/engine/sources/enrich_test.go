package sources

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestMetaContent(t *testing.T) {
	page := `<html><head>
		<meta property="og:title" content="Michelin Star Review">
		<meta property="og:description" content="  Tasting menu walkthrough  ">
		<link itemprop="name" content="Food Channel">
		<title>Michelin Star Review - YouTube</title>
	</head><body></body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	tests := []struct {
		name     string
		selector string
		want     string
	}{
		{name: "og title", selector: `meta[property="og:title"]`, want: "Michelin Star Review"},
		{name: "og description trimmed", selector: `meta[property="og:description"]`, want: "Tasting menu walkthrough"},
		{name: "channel link", selector: `link[itemprop="name"]`, want: "Food Channel"},
		{name: "missing", selector: `meta[property="og:video"]`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := metaContent(doc, tt.selector); got != tt.want {
				t.Errorf("metaContent(%q) = %q, want %q", tt.selector, got, tt.want)
			}
		})
	}
}
