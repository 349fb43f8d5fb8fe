package sources

import (
	"context"
	"testing"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

func TestVideoIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "watch url", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch url with extra params", url: "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ&t=42", want: "dQw4w9WgXcQ"},
		{name: "short url", url: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "short url with query", url: "https://youtu.be/dQw4w9WgXcQ?t=10", want: "dQw4w9WgXcQ"},
		{name: "not a video url", url: "https://www.youtube.com/playlist?list=PL123", want: ""},
		{name: "garbage", url: "not a url", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VideoIDFromURL(tt.url); got != tt.want {
				t.Errorf("VideoIDFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestPlaylistIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "playlist url", url: "https://www.youtube.com/playlist?list=PLabc123", want: "PLabc123"},
		{name: "watch url with list", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabc123", want: "PLabc123"},
		{name: "wrong host", url: "https://example.com/playlist?list=PLabc123", want: ""},
		{name: "no list param", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlaylistIDFromURL(tt.url); got != tt.want {
				t.Errorf("PlaylistIDFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestDirectSourceDiscover(t *testing.T) {
	src := &DirectSource{
		URLs: []string{
			"https://www.youtube.com/watch?v=aaaaaaaaaaa",
			"https://youtu.be/aaaaaaaaaaa", // duplicate ID
			"https://www.youtube.com/watch?v=bbbbbbbbbbb",
			"not a url",
		},
	}

	got, err := src.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Discover() returned %d videos, want 2", len(got))
	}
	if got[0].ID != "aaaaaaaaaaa" || got[1].ID != "bbbbbbbbbbb" {
		t.Errorf("Discover() ids = %s, %s; want aaaaaaaaaaa, bbbbbbbbbbb", got[0].ID, got[1].ID)
	}
	for _, v := range got {
		if v.Score != engine.ScoreMax {
			t.Errorf("video %s score = %d, want %d", v.ID, v.Score, engine.ScoreMax)
		}
		if v.URL != engine.WatchURL(v.ID) {
			t.Errorf("video %s url = %q, want canonical watch url", v.ID, v.URL)
		}
	}
}

func TestDirectSourceEnrichesOnlySurvivors(t *testing.T) {
	var enriched []string
	oldEnrich := enrichCandidate
	enrichCandidate = func(_ context.Context, v *engine.VideoCandidate) {
		enriched = append(enriched, v.ID)
		v.Title = "Enriched " + v.ID
	}
	defer func() { enrichCandidate = oldEnrich }()

	src := &DirectSource{
		URLs: []string{
			"https://www.youtube.com/watch?v=aaaaaaaaaaa",
			"https://www.youtube.com/watch?v=bbbbbbbbbbb",
			"https://www.youtube.com/watch?v=ccccccccccc",
		},
		MaxVideos: 2,
		Enrich:    true,
	}
	got, err := src.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Discover() returned %d videos, want 2", len(got))
	}
	// Candidates cut by MaxVideos never cost a watch-page fetch.
	if len(enriched) != 2 || enriched[0] != "aaaaaaaaaaa" || enriched[1] != "bbbbbbbbbbb" {
		t.Errorf("enriched ids = %v, want [aaaaaaaaaaa bbbbbbbbbbb]", enriched)
	}
	if got[0].Title != "Enriched aaaaaaaaaaa" {
		t.Errorf("got[0].Title = %q, want enrichment applied", got[0].Title)
	}
}

func TestDirectSourceMaxVideos(t *testing.T) {
	src := &DirectSource{
		URLs: []string{
			"https://www.youtube.com/watch?v=aaaaaaaaaaa",
			"https://www.youtube.com/watch?v=bbbbbbbbbbb",
		},
		MaxVideos: 1,
	}
	got, err := src.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "aaaaaaaaaaa" {
		t.Errorf("Discover() = %+v, want only aaaaaaaaaaa", got)
	}
}
