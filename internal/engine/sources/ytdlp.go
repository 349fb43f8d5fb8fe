package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

const subtitlePayloadTimeout = 30 * time.Second

// YtdlpStrategy extracts subtitles by asking yt-dlp for the requested
// subtitle metadata and downloading the json3 payload ourselves.
type YtdlpStrategy struct {
	Binary string
}

func (s *YtdlpStrategy) Name() string { return "yt-dlp" }

func (s *YtdlpStrategy) Attempt(ctx context.Context, videoID string, langs []string) (*engine.TranscriptResult, error) {
	engine.IncrYtdlp()

	runCtx, cancel := context.WithTimeout(ctx, engine.Cfg.SubprocessTimeout)
	defer cancel()

	args := []string{
		"--skip-download",
		"--write-auto-sub",
		"--write-sub",
		"--sub-langs", strings.Join(langs, ","),
		"--sub-format", "json3",
		"--print", "%(requested_subtitles)s",
		engine.WatchURL(videoID),
	}
	cmd := exec.CommandContext(runCtx, s.Binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp run: %w (%s)", err, firstLine(stderr.String()))
	}

	subs, err := parseSubtitleMeta(stdout.String())
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, fmt.Errorf("no subtitle tracks reported for %s", videoID)
	}

	for _, lang := range subtitleLangOrder(subs, langs) {
		desc := subs[lang]
		if desc.URL == "" {
			continue
		}
		payload, err := engine.FetchText(ctx, desc.URL, subtitlePayloadTimeout)
		if err != nil {
			slog.Warn("subtitle payload fetch failed",
				slog.String("id", videoID), slog.String("lang", lang), slog.Any("err", err))
			continue
		}
		if text := DecodeJSON3(payload); text != "" {
			return &engine.TranscriptResult{Language: lang, Text: text, Method: "yt-dlp"}, nil
		}
	}
	return nil, fmt.Errorf("no decodable subtitle payload for %s", videoID)
}

type subtitleDesc struct {
	URL string `json:"url"`
	Ext string `json:"ext"`
}

// parseSubtitleMeta decodes the --print %(requested_subtitles)s output. The
// value is a Python dict repr on a single line, which becomes valid JSON once
// single quotes are swapped for double quotes (track URLs never contain
// quotes). A "None" line means no tracks.
func parseSubtitleMeta(out string) (map[string]subtitleDesc, error) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if !strings.HasPrefix(last, "{") {
		return nil, nil
	}
	jsonish := strings.ReplaceAll(last, "'", `"`)
	subs := make(map[string]subtitleDesc)
	if err := json.Unmarshal([]byte(jsonish), &subs); err != nil {
		return nil, fmt.Errorf("parse subtitle metadata: %w", err)
	}
	return subs, nil
}

// subtitleLangOrder returns the preferred languages present in subs first, in
// preference order, followed by the remaining tracks sorted by code.
func subtitleLangOrder(subs map[string]subtitleDesc, langs []string) []string {
	order := make([]string, 0, len(subs))
	seen := make(map[string]bool, len(subs))
	for _, lang := range langs {
		if _, ok := subs[lang]; ok && !seen[lang] {
			order = append(order, lang)
			seen[lang] = true
		}
	}
	rest := make([]string, 0, len(subs))
	for lang := range subs {
		if !seen[lang] {
			rest = append(rest, lang)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
