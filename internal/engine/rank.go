package engine

import "sort"

// RankOptions control relevance ranking. The scoring weights default to the
// empirically tuned values; they are fields rather than constants so callers
// and tests can adjust them.
type RankOptions struct {
	Keywords         []string
	NegativeKeywords []string
	FeedLimit        int  // how many candidates to examine, in provider order
	MaxVideos        int  // result cap
	MinScore         int  // minimum acceptable score
	Strict           bool // require >= 2 positive hits and no negative hit

	PositiveWeight  int // added per broad-field keyword hit
	NegativePenalty int // subtracted per negative keyword hit
}

// DefaultRankOptions returns the standard tuning.
func DefaultRankOptions() RankOptions {
	return RankOptions{
		FeedLimit:       30,
		MaxVideos:       8,
		MinScore:        2,
		PositiveWeight:  2,
		NegativePenalty: 3,
	}
}

// Rank scores, filters, deduplicates, and orders candidates by relevance.
// Only the first FeedLimit candidates are examined; the haystack is
// title + channel + description. Negative hits outweigh positive hits of the
// same count, biasing toward precision. Pure computation, no I/O.
func Rank(videos []VideoCandidate, opts RankOptions) []VideoCandidate {
	if opts.PositiveWeight == 0 {
		opts.PositiveWeight = 2
	}
	if opts.NegativePenalty == 0 {
		opts.NegativePenalty = 3
	}
	limit := opts.FeedLimit
	if limit <= 0 || limit > len(videos) {
		limit = len(videos)
	}

	scored := make([]VideoCandidate, 0, limit)
	for _, v := range videos[:limit] {
		haystack := v.Title + " " + v.Channel + " " + v.Description
		posHits := KeywordHits(haystack, opts.Keywords)
		negHits := KeywordHits(haystack, opts.NegativeKeywords)
		v.Score = TitleScore(v.Title, opts.Keywords) + posHits*opts.PositiveWeight - negHits*opts.NegativePenalty

		if opts.Strict && (posHits < 2 || negHits > 0) {
			continue
		}
		if v.Score >= opts.MinScore {
			scored = append(scored, v)
		}
	}

	scored = DedupByID(scored)

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Published > scored[j].Published
	})

	if opts.MaxVideos > 0 && len(scored) > opts.MaxVideos {
		scored = scored[:opts.MaxVideos]
	}
	return scored
}

// DedupByID keeps one candidate per video ID. Order follows the first
// occurrence; the value is the last occurrence (last write wins).
func DedupByID(videos []VideoCandidate) []VideoCandidate {
	index := make(map[string]int, len(videos))
	out := make([]VideoCandidate, 0, len(videos))
	for _, v := range videos {
		if i, seen := index[v.ID]; seen {
			out[i] = v
			continue
		}
		index[v.ID] = len(out)
		out = append(out, v)
	}
	return out
}
