package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/mmcdole/gofeed"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// bingBase is a var so tests can point it at a local server.
var bingBase = "https://www.bing.com/search"

// BingSource is the secondary text-search provider, used only when the
// primary feed query fails. Results come back as an RSS channel of generic
// web hits and are filtered down to entries with a recoverable video ID
// before they reach the ranker.
type BingSource struct {
	Query string
	Count int
}

func (s *BingSource) Name() string { return "bing-rss-fallback" }

func (s *BingSource) Discover(ctx context.Context) ([]engine.VideoCandidate, error) {
	engine.IncrSearchFallback()
	count := s.Count
	if count < 10 {
		count = 10
	}
	q := url.QueryEscape("site:youtube.com/watch " + s.Query)
	searchURL := fmt.Sprintf("%s?format=rss&q=%s&count=%d&first=1", bingBase, q, count)

	body, err := engine.FetchText(ctx, searchURL, engine.Cfg.FetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("fetch bing rss: %w", err)
	}

	parsed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("parse bing rss: %w", err)
	}

	videos := make([]engine.VideoCandidate, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		vid := VideoIDFromURL(item.Link)
		if vid == "" {
			continue
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = vid
		}
		videos = append(videos, engine.VideoCandidate{
			ID:          vid,
			Title:       title,
			URL:         engine.WatchURL(vid),
			Published:   isoPublished(item),
			Description: plainDescription(item.Description),
		})
	}
	return videos, nil
}

// plainDescription converts an HTML search snippet into report-safe text.
func plainDescription(htmlDesc string) string {
	htmlDesc = strings.TrimSpace(htmlDesc)
	if htmlDesc == "" {
		return ""
	}
	md, err := htmltomarkdown.ConvertString(htmlDesc)
	if err != nil {
		return engine.CleanHTML(htmlDesc)
	}
	return engine.CollapseSpace(md)
}
