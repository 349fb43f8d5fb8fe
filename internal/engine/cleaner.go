package engine

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Non-speech caption markers in either [marker] or (... marker ...) shape.
var (
	bracketNoiseRe = regexp.MustCompile(`(?i)\[(music|applause|laughter|noise)\]`)
	parenNoiseRe   = regexp.MustCompile(`(?i)\([^)]*(music|applause|laughter|noise)[^)]*\)`)
)

// Sentence-final punctuation for CJK and Latin scripts.
const sentenceEnders = "。！？.!?"

// minSentenceRunes drops filler fragments; minDraftRunes is the stricter
// floor used by the draft synthesizer.
const (
	minSentenceRunes = 8
	minDraftRunes    = 12
)

// SplitSentences splits text at whitespace following sentence-final
// punctuation, keeping the punctuation with its sentence. Text without a
// final ender becomes the last sentence.
func SplitSentences(text string) []string {
	runes := []rune(text)
	var out []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !strings.ContainsRune(sentenceEnders, runes[i]) {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue // mid-token punctuation, e.g. "3.5"
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			out = append(out, s)
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CleanTranscript removes non-speech noise markers, collapses whitespace,
// and drops too-short or adjacently duplicated sentences. Deterministic,
// no external state.
func CleanTranscript(text string) string {
	if text == "" {
		return ""
	}

	cleaned := bracketNoiseRe.ReplaceAllString(text, " ")
	cleaned = parenNoiseRe.ReplaceAllString(cleaned, " ")
	cleaned = CollapseSpace(cleaned)

	var out []string
	prev := ""
	for _, s := range SplitSentences(cleaned) {
		if utf8.RuneCountInString(s) < minSentenceRunes {
			continue
		}
		if s == prev {
			continue
		}
		out = append(out, s)
		prev = s
	}
	return strings.TrimSpace(strings.Join(out, " "))
}
