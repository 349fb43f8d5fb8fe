// go_tube — YouTube transcript pipeline CLI.
//
// Discovers videos for a query (RSS feed first, Bing RSS as fallback),
// ranks them by keyword relevance, extracts transcripts (yt-dlp first,
// watch-page captions as fallback), and renders a Markdown report with
// a short draft summary per transcript.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/sources"
	"github.com/anatolykoptev/go_tube/internal/report"
)

var version = "dev"

const (
	defaultKeywords         = "michelin,fine dining,restaurant,food review,食评,探店,美食,餐厅"
	defaultNegativeKeywords = "trailer,game,music,lyrics,reaction,meme,shorts,compilation"
	defaultPreferLangs      = "zh-Hans,zh,en"
	defaultOutput           = "output/youtube_food_transcripts.md"
)

type cliFlags struct {
	query            string
	keywords         string
	negativeKeywords string
	maxVideos        int
	feedLimit        int
	minScore         int
	strictRelevance  bool
	preferLangs      string
	videoURLs        []string
	playlistURLs     []string
	output           string
	verbose          bool
}

func main() {
	var flags cliFlags

	root := &cobra.Command{
		Use:     "go_tube",
		Short:   "Discover, rank, and transcribe YouTube videos",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), flags)
		},
		SilenceUsage: true,
	}

	root.Flags().StringVarP(&flags.query, "query", "q", "", "search query for feed and search discovery")
	root.Flags().StringVar(&flags.keywords, "keywords", defaultKeywords, "comma-separated relevance keywords")
	root.Flags().StringVar(&flags.negativeKeywords, "negative-keywords", defaultNegativeKeywords, "comma-separated keywords that penalize a video")
	root.Flags().IntVar(&flags.maxVideos, "max-videos", 8, "maximum videos to transcribe")
	root.Flags().IntVar(&flags.feedLimit, "feed-limit", 30, "maximum feed entries to consider")
	root.Flags().IntVar(&flags.minScore, "min-score", 2, "minimum relevance score to keep a video")
	root.Flags().BoolVar(&flags.strictRelevance, "strict-relevance", false, "require at least two keyword hits and zero negative hits")
	root.Flags().StringVar(&flags.preferLangs, "prefer-lang", defaultPreferLangs, "comma-separated transcript language preference")
	root.Flags().StringArrayVar(&flags.videoURLs, "video-url", nil, "transcribe this video directly, skipping discovery (repeatable)")
	root.Flags().StringArrayVar(&flags.playlistURLs, "playlist-url", nil, "transcribe videos from this playlist (repeatable)")
	root.Flags().StringVarP(&flags.output, "output", "o", defaultOutput, "report output path")
	root.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		slog.Error("run failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, flags cliFlags) error {
	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if flags.query == "" && len(flags.videoURLs) == 0 && len(flags.playlistURLs) == 0 {
		return fmt.Errorf("nothing to do: provide --query, --video-url, or --playlist-url")
	}

	initEngine()

	rankOpts := engine.DefaultRankOptions()
	rankOpts.Keywords = engine.SplitKeywords(flags.keywords)
	rankOpts.NegativeKeywords = engine.SplitKeywords(flags.negativeKeywords)
	rankOpts.FeedLimit = flags.feedLimit
	rankOpts.MaxVideos = flags.maxVideos
	rankOpts.MinScore = flags.minScore
	rankOpts.Strict = flags.strictRelevance

	srcs, ranked := buildSources(flags)
	opts := engine.RunOptions{
		Query:  flags.query,
		Rank:   rankOpts,
		Ranked: ranked,
		Langs:  engine.SplitList(flags.preferLangs),
	}

	data, err := engine.Run(ctx, srcs, opts, sources.NewTranscriptFetcher())
	if err != nil {
		return err
	}

	if err := report.Write(flags.output, data); err != nil {
		return err
	}

	withTranscript := 0
	for _, item := range data.Items {
		if item.Transcript != nil {
			withTranscript++
		}
	}
	slog.Info("report written",
		slog.String("path", flags.output),
		slog.Int("videos", len(data.Videos)),
		slog.Int("transcripts", withTranscript))

	if flags.verbose {
		fmt.Fprintln(os.Stderr, engine.FormatMetrics())
	}
	return nil
}

// buildSources maps CLI mode to a discovery chain. Playlist and direct-URL
// modes bypass relevance ranking; query mode ranks and falls back from the
// YouTube feed to Bing RSS search.
func buildSources(flags cliFlags) (srcs []engine.Source, ranked bool) {
	switch {
	case len(flags.playlistURLs) > 0:
		return []engine.Source{
			&sources.PlaylistSource{URLs: flags.playlistURLs, MaxVideos: flags.maxVideos},
		}, false
	case len(flags.videoURLs) > 0:
		return []engine.Source{
			&sources.DirectSource{URLs: flags.videoURLs, MaxVideos: flags.maxVideos, Enrich: true},
		}, false
	default:
		return []engine.Source{
			&sources.FeedSource{Query: flags.query},
			&sources.BingSource{Query: flags.query, Count: flags.feedLimit},
		}, true
	}
}

func initEngine() {
	c := engine.Config{
		YtdlpPath:         env.Str("YTDLP_PATH", ""),
		FetchTimeout:      env.Duration("FETCH_TIMEOUT", 20*time.Second),
		SubprocessTimeout: env.Duration("YTDLP_TIMEOUT", 90*time.Second),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	bc, err := stealth.NewClient(stealth.WithTimeout(25))
	if err != nil {
		slog.Warn("stealth client init failed, using plain HTTP client", slog.Any("err", err))
	} else {
		c.BrowserClient = bc
	}

	engine.Init(c)
	engine.InitCache(
		env.Str("REDIS_URL", ""),
		env.Duration("CACHE_TTL", 15*time.Minute),
		env.Int("CACHE_MAX_ENTRIES", 1000),
	)
}
