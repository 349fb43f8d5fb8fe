package engine

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/anatolykoptev/go-kit/strutil"
)

var (
	wsRe      = regexp.MustCompile(`\s+`)
	htmlTagRe = regexp.MustCompile(`<[^>]+>`)
)

// NormalizeText collapses whitespace runs to single spaces, trims, and
// lowercases. Idempotent: normalizing normalized text is a no-op.
func NormalizeText(s string) string {
	return strings.ToLower(CollapseSpace(s))
}

// CollapseSpace collapses whitespace runs to single spaces and trims,
// without case folding.
func CollapseSpace(s string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

// SplitKeywords splits a comma-separated keyword list, trimming, lowercasing,
// and dropping empties.
func SplitKeywords(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if kw := strings.ToLower(strings.TrimSpace(part)); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// SplitList splits a comma-separated list preserving case. Used for language
// tags, where "zh-Hans" must survive intact.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// KeywordHits counts keywords present as substrings of the normalized text.
// Each keyword contributes independently, so the count is order-insensitive.
func KeywordHits(text string, keywords []string) int {
	norm := NormalizeText(text)
	hits := 0
	for _, kw := range keywords {
		if kw != "" && strings.Contains(norm, kw) {
			hits++
		}
	}
	return hits
}

// TitleScore weights positive keyword matches found in the title alone:
// each match adds max(1, runes/4), so longer keywords count more.
func TitleScore(title string, keywords []string) int {
	t := NormalizeText(title)
	score := 0
	for _, kw := range keywords {
		k := NormalizeText(kw)
		if k == "" || !strings.Contains(t, k) {
			continue
		}
		w := utf8.RuneCountInString(k) / 4
		if w < 1 {
			w = 1
		}
		score += w
	}
	return score
}

// CleanHTML strips HTML tags and trims whitespace.
func CleanHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// TruncateAtWord truncates a string to maxLen runes at a word boundary.
func TruncateAtWord(s string, maxLen int) string {
	return strutil.TruncateAtWord(s, maxLen)
}
