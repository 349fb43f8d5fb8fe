package sources

import "testing"

func TestExtractCaptionTracks(t *testing.T) {
	tests := []struct {
		name string
		html string
		want int
	}{
		{
			name: "descriptor block present",
			html: `var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"https://www.youtube.com/api/timedtext?v=x&lang=en","languageCode":"en"},{"baseUrl":"https://www.youtube.com/api/timedtext?v=x&lang=zh-Hans","languageCode":"zh-Hans"}],"audioTracks":[]}}};`,
			want: 2,
		},
		{
			name: "entries without url dropped",
			html: `{"captionTracks":[{"baseUrl":"","languageCode":"en"},{"baseUrl":"https://example.com/t","languageCode":"en"}],`,
			want: 1,
		},
		{name: "no block", html: "<html><body>nothing here</body></html>", want: 0},
		{name: "malformed block", html: `{"captionTracks":[{"baseUrl":},`, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractCaptionTracks(tt.html)
			if len(got) != tt.want {
				t.Errorf("extractCaptionTracks() returned %d tracks, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSortTracksByPreference(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "u1", LanguageCode: "en"},
		{BaseURL: "u2", LanguageCode: "ja"},
		{BaseURL: "u3", LanguageCode: "zh-Hans"},
	}

	got := sortTracksByPreference(tracks, []string{"zh-Hans", "zh", "en"})
	wantOrder := []string{"zh-Hans", "en", "ja"}
	for i, lang := range wantOrder {
		if got[i].LanguageCode != lang {
			t.Errorf("sorted[%d] = %q, want %q", i, got[i].LanguageCode, lang)
		}
	}

	// Input slice stays untouched.
	if tracks[0].LanguageCode != "en" {
		t.Errorf("input mutated: tracks[0] = %q", tracks[0].LanguageCode)
	}
}

func TestSortTracksByPreferenceNoPreference(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "u1", LanguageCode: "ja"},
		{BaseURL: "u2", LanguageCode: "ko"},
	}
	got := sortTracksByPreference(tracks, nil)
	if got[0].LanguageCode != "ja" || got[1].LanguageCode != "ko" {
		t.Errorf("original order not preserved: %v", got)
	}
}
