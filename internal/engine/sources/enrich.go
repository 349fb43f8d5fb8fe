package sources

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// enrichCandidate is a var so tests can stub out the network fetch.
var enrichCandidate = enrichFromWatchPage

// enrichFromWatchPage fills in title, channel, and description for a manually
// supplied video by scraping its watch page metadata. Best effort: on any
// failure the synthetic "youtube:ID" title stays.
func enrichFromWatchPage(ctx context.Context, v *engine.VideoCandidate) {
	pageCtx, cancel := context.WithTimeout(ctx, watchPageTimeout)
	defer cancel()

	watchHTML, err := fetchWatchHTML(pageCtx, v.ID)
	if err != nil {
		slog.Debug("watch page enrichment failed", slog.String("id", v.ID), slog.Any("err", err))
		return
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(watchHTML))
	if err != nil {
		slog.Debug("watch page parse failed", slog.String("id", v.ID), slog.Any("err", err))
		return
	}

	if title := metaContent(doc, `meta[property="og:title"]`); title != "" {
		v.Title = title
	} else if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		v.Title = strings.TrimSuffix(title, " - YouTube")
	}
	if desc := metaContent(doc, `meta[property="og:description"]`); desc != "" {
		v.Description = desc
	}
	if channel := metaContent(doc, `link[itemprop="name"]`); channel != "" {
		v.Channel = channel
	}
}

func metaContent(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().AttrOr("content", ""))
}
