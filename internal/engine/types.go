package engine

// ScoreMax marks manually supplied videos. They bypass relevance ranking
// entirely and always sort first.
const ScoreMax = 999

// VideoCandidate is a video identified by a discovery step, not yet confirmed
// to have a transcript. Score is 0 until the ranker assigns it.
type VideoCandidate struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Published   string `json:"published"` // provider format, ISO-8601 sortable
	Channel     string `json:"channel"`
	Description string `json:"description"`
	Score       int    `json:"score"`
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// TranscriptResult is the spoken-word text extracted for one video.
// Text holds the cleaned transcript; Method names the strategy that produced it.
type TranscriptResult struct {
	Language string `json:"language"`
	Text     string `json:"text"`
	Method   string `json:"method"`
}

// VideoTranscript pairs a selected candidate with its optional transcript.
// A nil Transcript means every extraction strategy came up empty.
type VideoTranscript struct {
	Video      VideoCandidate
	Transcript *TranscriptResult
}

// ReportData is the shape consumed by the report renderer.
type ReportData struct {
	Query    string
	Keywords []string
	Source   string // which discovery source produced the candidates
	Videos   []VideoCandidate
	Items    []VideoTranscript
}
