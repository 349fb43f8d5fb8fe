package sources

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// videoIDRE matches the two canonical URL shapes: watch?v=ID and youtu.be/ID.
var videoIDRE = regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// VideoIDFromURL pulls the 11-char video ID from any YouTube URL format.
// Returns "" for anything unrecognized.
func VideoIDFromURL(rawURL string) string {
	m := videoIDRE.FindStringSubmatch(rawURL)
	if len(m) >= 2 {
		return m[1]
	}
	return ""
}

// PlaylistIDFromURL extracts the list parameter from a playlist URL.
func PlaylistIDFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if !strings.Contains(host, "youtube.com") && !strings.HasSuffix(host, "youtu.be") {
		return ""
	}
	return strings.TrimSpace(u.Query().Get("list"))
}

// DirectSource wraps manually supplied watch URLs. The videos bypass
// relevance ranking and carry the maximum score. Invalid URLs are silently
// skipped; duplicate IDs are dropped (first occurrence wins).
type DirectSource struct {
	URLs      []string
	MaxVideos int
	Enrich    bool // scrape watch pages to fill in titles and descriptions
}

func (s *DirectSource) Name() string { return "manual-video-urls" }

func (s *DirectSource) Discover(ctx context.Context) ([]engine.VideoCandidate, error) {
	seen := make(map[string]bool, len(s.URLs))
	var videos []engine.VideoCandidate
	for _, raw := range s.URLs {
		vid := VideoIDFromURL(strings.TrimSpace(raw))
		if vid == "" || seen[vid] {
			continue
		}
		seen[vid] = true
		videos = append(videos, engine.VideoCandidate{
			ID:    vid,
			Title: "youtube:" + vid,
			URL:   engine.WatchURL(vid),
			Score: engine.ScoreMax,
		})
	}
	if s.MaxVideos > 0 && len(videos) > s.MaxVideos {
		videos = videos[:s.MaxVideos]
	}
	// Enrich only the candidates that survive the cap; each enrichment is a
	// watch-page fetch.
	if s.Enrich {
		for i := range videos {
			enrichCandidate(ctx, &videos[i])
		}
	}
	return videos, nil
}
