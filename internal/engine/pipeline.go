package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Source discovers video candidates. Implementations return an error only
// when the provider itself failed; zero results with a nil error is a valid
// outcome and stops the fallback chain.
type Source interface {
	Name() string
	Discover(ctx context.Context) ([]VideoCandidate, error)
}

// TranscriptFunc extracts a transcript for one video. A nil result means
// "no transcript available", never an error.
type TranscriptFunc func(ctx context.Context, videoID string, langs []string) *TranscriptResult

// RunOptions configure a single pipeline run.
type RunOptions struct {
	Query  string
	Rank   RankOptions
	Ranked bool     // false for playlist and direct-URL modes
	Langs  []string // preferred transcript languages, in order
}

// Run executes discovery, optional ranking, and per-video transcript
// extraction. Sources are tried in order; a failing source logs a warning
// and passes control to the next. All sources failing is the only fatal
// condition. Candidates are processed sequentially since extraction
// endpoints are rate-limited.
func Run(ctx context.Context, srcs []Source, opts RunOptions, fetch TranscriptFunc) (ReportData, error) {
	var videos []VideoCandidate
	sourceName := ""
	var lastErr error
	for _, s := range srcs {
		got, err := s.Discover(ctx)
		if err != nil {
			slog.Warn("discovery source failed", slog.String("source", s.Name()), slog.Any("err", err))
			lastErr = err
			continue
		}
		videos = got
		sourceName = s.Name()
		break
	}
	if sourceName == "" {
		if lastErr != nil {
			return ReportData{}, fmt.Errorf("no candidate source available: %w", lastErr)
		}
		return ReportData{}, errors.New("no candidate source configured")
	}

	if opts.Ranked {
		videos = Rank(videos, opts.Rank)
	}

	slog.Info("candidates selected",
		slog.String("source", sourceName),
		slog.Int("count", len(videos)))

	items := make([]VideoTranscript, 0, len(videos))
	for _, v := range videos {
		tr := fetch(ctx, v.ID, opts.Langs)
		if tr == nil {
			slog.Info("no transcript", slog.String("id", v.ID))
		} else {
			slog.Info("transcript extracted",
				slog.String("id", v.ID),
				slog.String("method", tr.Method),
				slog.String("lang", tr.Language),
				slog.Int("chars", len(tr.Text)))
		}
		items = append(items, VideoTranscript{Video: v, Transcript: tr})
	}

	return ReportData{
		Query:    opts.Query,
		Keywords: opts.Rank.Keywords,
		Source:   sourceName,
		Videos:   videos,
		Items:    items,
	}, nil
}
