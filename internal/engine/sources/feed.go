package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// feedBase is a var so tests can point it at a local server.
var feedBase = "https://www.youtube.com/feeds/videos.xml"

// FeedSource queries the YouTube search feed for a topic. This is the
// primary discovery provider; BingSource covers its failures.
type FeedSource struct {
	Query string
}

func (s *FeedSource) Name() string { return "youtube-feed" }

func (s *FeedSource) Discover(ctx context.Context) ([]engine.VideoCandidate, error) {
	engine.IncrFeed()
	feedURL := feedBase + "?search_query=" + url.QueryEscape(s.Query)
	return fetchVideoFeed(ctx, feedURL)
}

// PlaylistSource expands playlist references into their member videos,
// deduplicated across playlists and sorted oldest first. Relevance ranking
// never applies to playlist mode. A single failing playlist is skipped,
// not fatal.
type PlaylistSource struct {
	URLs      []string
	MaxVideos int
}

func (s *PlaylistSource) Name() string { return "playlist-feed" }

func (s *PlaylistSource) Discover(ctx context.Context) ([]engine.VideoCandidate, error) {
	var all []engine.VideoCandidate
	for _, raw := range s.URLs {
		pid := PlaylistIDFromURL(strings.TrimSpace(raw))
		if pid == "" {
			slog.Debug("skipping playlist URL without list id", slog.String("url", raw))
			continue
		}
		engine.IncrPlaylist()
		feedURL := feedBase + "?playlist_id=" + url.QueryEscape(pid)
		videos, err := fetchVideoFeed(ctx, feedURL)
		if err != nil {
			slog.Warn("playlist feed failed", slog.String("playlist", pid), slog.Any("err", err))
			continue
		}
		all = append(all, videos...)
	}

	all = engine.DedupByID(all)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Published < all[j].Published })
	if s.MaxVideos > 0 && len(all) > s.MaxVideos {
		all = all[:s.MaxVideos]
	}
	return all, nil
}

// fetchVideoFeed fetches and parses a YouTube Atom feed into candidates.
// Entries without a video ID or title are skipped.
func fetchVideoFeed(ctx context.Context, feedURL string) ([]engine.VideoCandidate, error) {
	body, err := engine.FetchText(ctx, feedURL, engine.Cfg.FetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	parsed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	videos := make([]engine.VideoCandidate, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		id := feedVideoID(item)
		if id == "" || item.Title == "" {
			continue
		}
		link := item.Link
		if link == "" {
			link = engine.WatchURL(id)
		}
		videos = append(videos, engine.VideoCandidate{
			ID:          id,
			Title:       item.Title,
			URL:         link,
			Published:   isoPublished(item),
			Channel:     feedAuthor(item),
			Description: feedDescription(item),
		})
	}
	return videos, nil
}

// feedVideoID reads the yt:videoId extension, falling back to the entry GUID
// ("yt:video:ID").
func feedVideoID(item *gofeed.Item) string {
	if exts, ok := item.Extensions["yt"]; ok {
		if vals, ok := exts["videoId"]; ok && len(vals) > 0 {
			if id := strings.TrimSpace(vals[0].Value); id != "" {
				return id
			}
		}
	}
	if strings.HasPrefix(item.GUID, "yt:video:") {
		return strings.TrimPrefix(item.GUID, "yt:video:")
	}
	return ""
}

func feedAuthor(item *gofeed.Item) string {
	if len(item.Authors) > 0 && item.Authors[0] != nil {
		return item.Authors[0].Name
	}
	return ""
}

// feedDescription reads media:group/media:description, falling back to the
// plain item description.
func feedDescription(item *gofeed.Item) string {
	if exts, ok := item.Extensions["media"]; ok {
		if groups, ok := exts["group"]; ok && len(groups) > 0 {
			if descs, ok := groups[0].Children["description"]; ok && len(descs) > 0 {
				return strings.TrimSpace(descs[0].Value)
			}
		}
	}
	return strings.TrimSpace(item.Description)
}

// isoPublished returns the publish timestamp in ISO-8601 form so that
// lexicographic comparison orders by time. Falls back to the raw provider
// string when the date did not parse.
func isoPublished(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC().Format(time.RFC3339)
	}
	return strings.TrimSpace(item.Published)
}
