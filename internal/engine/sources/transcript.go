package sources

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// Strategy is one way of obtaining a transcript for a video.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, videoID string, langs []string) (*engine.TranscriptResult, error)
}

// NewTranscriptFetcher builds the strategy chain once and returns a fetcher
// that tries each strategy in order, caching cleaned results.
func NewTranscriptFetcher() engine.TranscriptFunc {
	chain := buildStrategyChain()
	return func(ctx context.Context, videoID string, langs []string) *engine.TranscriptResult {
		return fetchTranscript(ctx, chain, videoID, langs)
	}
}

// buildStrategyChain orders extraction attempts: yt-dlp first when the binary
// resolves, then the watch-page scrape. Without the binary the chain is the
// scrape alone.
func buildStrategyChain() []Strategy {
	var chain []Strategy

	binary := engine.Cfg.YtdlpPath
	if binary == "" {
		binary = "yt-dlp"
	}
	if path, err := exec.LookPath(binary); err == nil {
		chain = append(chain, &YtdlpStrategy{Binary: path})
	} else {
		slog.Info("yt-dlp not found, subtitle extraction limited to watch pages",
			slog.String("binary", binary))
	}

	return append(chain, WatchPageStrategy{})
}

func fetchTranscript(ctx context.Context, chain []Strategy, videoID string, langs []string) *engine.TranscriptResult {
	engine.IncrTranscript()

	key := engine.CacheKey("tr", videoID, strings.Join(langs, ","))
	if cached, ok := engine.CacheGetTranscript(ctx, key); ok {
		return &cached
	}

	for _, strat := range chain {
		res, err := strat.Attempt(ctx, videoID, langs)
		if err != nil {
			slog.Warn("transcript strategy failed",
				slog.String("strategy", strat.Name()),
				slog.String("id", videoID),
				slog.Any("err", err))
			continue
		}
		if res == nil {
			continue
		}
		res.Text = engine.CleanTranscript(res.Text)
		if res.Text == "" {
			slog.Warn("transcript empty after cleaning",
				slog.String("strategy", strat.Name()), slog.String("id", videoID))
			continue
		}
		engine.CacheSetTranscript(ctx, key, *res)
		return res
	}
	return nil
}
