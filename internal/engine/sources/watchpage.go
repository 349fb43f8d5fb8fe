package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// watchPageTimeout bounds the watch-page fetch and each caption track fetch.
const watchPageTimeout = 25 * time.Second

// captionTracksRE locates the caption-track descriptor block embedded in
// watch page HTML.
var captionTracksRE = regexp.MustCompile(`"captionTracks":(\[.*?\])[,}]`)

// captionTrack is one entry of the embedded descriptor block.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
}

// WatchPageStrategy scrapes caption tracks out of the watch page HTML and
// fetches the first track that decodes to non-empty text.
type WatchPageStrategy struct{}

func (WatchPageStrategy) Name() string { return "watch-page" }

func (WatchPageStrategy) Attempt(ctx context.Context, videoID string, langs []string) (*engine.TranscriptResult, error) {
	engine.IncrWatchPage()

	pageCtx, cancel := context.WithTimeout(ctx, watchPageTimeout)
	defer cancel()
	watchHTML, err := fetchWatchHTML(pageCtx, videoID)
	if err != nil {
		return nil, err
	}

	tracks := extractCaptionTracks(watchHTML)
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks in watch page")
	}

	for _, track := range sortTracksByPreference(tracks, langs) {
		trackURL := track.BaseURL
		// Force the timedtext XML sub-format for plain-text conversion.
		if !strings.Contains(trackURL, "fmt=") {
			trackURL += "&fmt=srv3"
		}
		xmlText, err := engine.FetchText(ctx, trackURL, watchPageTimeout)
		if err != nil {
			slog.Debug("caption track fetch failed",
				slog.String("id", videoID), slog.String("lang", track.LanguageCode), slog.Any("err", err))
			continue
		}
		if text := DecodeTimedText(xmlText); text != "" {
			return &engine.TranscriptResult{
				Language: track.LanguageCode,
				Text:     text,
				Method:   "watch-page",
			}, nil
		}
	}
	return nil, errors.New("no caption track produced text")
}

// extractCaptionTracks parses the captionTracks JSON block out of watch HTML.
// Returns nil when the block is absent or malformed.
func extractCaptionTracks(watchHTML string) []captionTrack {
	m := captionTracksRE.FindStringSubmatch(watchHTML)
	if m == nil {
		return nil
	}
	var tracks []captionTrack
	if err := json.Unmarshal([]byte(m[1]), &tracks); err != nil {
		return nil
	}
	out := tracks[:0]
	for _, t := range tracks {
		if t.LanguageCode != "" && t.BaseURL != "" {
			out = append(out, t)
		}
	}
	return out
}

// sortTracksByPreference orders tracks by preferred-language rank; languages
// not in the preference list sort last, original order otherwise preserved.
func sortTracksByPreference(tracks []captionTrack, langs []string) []captionTrack {
	rank := func(code string) int {
		for i, l := range langs {
			if l == code {
				return i
			}
		}
		return len(langs) + 1
	}
	sorted := append([]captionTrack(nil), tracks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rank(sorted[i].LanguageCode) < rank(sorted[j].LanguageCode)
	})
	return sorted
}

// fetchWatchHTML fetches the watch page with browser-like headers, through
// the stealth client when one is configured.
func fetchWatchHTML(ctx context.Context, videoID string) (string, error) {
	watchURL := engine.WatchURL(videoID)

	if bc := engine.Cfg.BrowserClient; bc != nil {
		headers := engine.ChromeHeaders()
		headers["accept-language"] = "en-US,en;q=0.9"
		data, _, status, err := bc.Do(http.MethodGet, watchURL, headers, nil)
		if err != nil {
			return "", fmt.Errorf("watch page: %w", err)
		}
		if status != http.StatusOK {
			return "", fmt.Errorf("watch page status %d", status)
		}
		return string(data), nil
	}

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return "", fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return "", fmt.Errorf("read watch page: %w", err)
	}
	return string(body), nil
}
