package engine

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// promoRe matches promotional / call-to-action phrasing (multilingual);
// such sentences are penalized when building a draft.
var promoRe = regexp.MustCompile(`(?i)(subscribe|like|follow|广告|赞助|链接在简介)`)

// promoPenalty is subtracted from a sentence's keyword score on a promo match.
const promoPenalty = 2

// Draft extracts up to maxSentences keyword-heavy sentences from a cleaned
// transcript. Sentences are scored by keyword hit count, sorted stably by
// score, and picked greedily with global duplicate suppression on the
// normalized form. Empty output means "no draft", not an error.
func Draft(text string, keywords []string, maxSentences int) string {
	if text == "" {
		return ""
	}
	if maxSentences <= 0 {
		maxSentences = 8
	}

	type scoredSentence struct {
		score int
		text  string
	}
	var scored []scoredSentence
	for _, s := range SplitSentences(text) {
		t := strings.TrimSpace(s)
		if utf8.RuneCountInString(t) < minDraftRunes {
			continue
		}
		score := KeywordHits(t, keywords)
		if promoRe.MatchString(t) {
			score -= promoPenalty
		}
		scored = append(scored, scoredSentence{score: score, text: t})
	}

	// Stable: ties keep original sentence order.
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	seen := make(map[string]bool, len(scored))
	var picked []string
	for _, s := range scored {
		key := NormalizeText(s.text)
		if seen[key] {
			continue
		}
		seen[key] = true
		picked = append(picked, s.text)
		if len(picked) >= maxSentences {
			break
		}
	}
	return strings.Join(picked, " ")
}
