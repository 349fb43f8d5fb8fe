package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across a run.
var metrics struct {
	FeedRequests       atomic.Int64
	PlaylistRequests   atomic.Int64
	SearchFallbacks    atomic.Int64
	FetchRequests      atomic.Int64
	FetchErrors        atomic.Int64
	TranscriptRequests atomic.Int64
	YtdlpRuns          atomic.Int64
	WatchPageScrapes   atomic.Int64
}

func IncrFeed()           { metrics.FeedRequests.Add(1) }
func IncrPlaylist()       { metrics.PlaylistRequests.Add(1) }
func IncrSearchFallback() { metrics.SearchFallbacks.Add(1) }
func IncrFetch()          { metrics.FetchRequests.Add(1) }
func IncrFetchError()     { metrics.FetchErrors.Add(1) }
func IncrTranscript()     { metrics.TranscriptRequests.Add(1) }
func IncrYtdlp()          { metrics.YtdlpRuns.Add(1) }
func IncrWatchPage()      { metrics.WatchPageScrapes.Add(1) }

// GetMetrics returns a snapshot of all counters including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"feed_requests":       metrics.FeedRequests.Load(),
		"playlist_requests":   metrics.PlaylistRequests.Load(),
		"search_fallbacks":    metrics.SearchFallbacks.Load(),
		"fetch_requests":      metrics.FetchRequests.Load(),
		"fetch_errors":        metrics.FetchErrors.Load(),
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"ytdlp_runs":          metrics.YtdlpRuns.Load(),
		"watch_page_scrapes":  metrics.WatchPageScrapes.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns counters as a simple text dump for end-of-run logging.
func FormatMetrics() string {
	m := GetMetrics()
	keys := []string{
		"feed_requests", "playlist_requests", "search_fallbacks",
		"fetch_requests", "fetch_errors",
		"transcript_requests", "ytdlp_runs", "watch_page_scrapes",
		"cache_hits", "cache_misses",
	}
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
