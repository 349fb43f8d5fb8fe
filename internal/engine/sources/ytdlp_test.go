package sources

import (
	"reflect"
	"testing"
)

func TestParseSubtitleMeta(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    map[string]subtitleDesc
		wantErr bool
	}{
		{
			name: "python dict repr",
			out:  `{'en': {'ext': 'json3', 'url': 'https://example.com/en'}, 'zh-Hans': {'ext': 'json3', 'url': 'https://example.com/zh'}}`,
			want: map[string]subtitleDesc{
				"en":      {URL: "https://example.com/en", Ext: "json3"},
				"zh-Hans": {URL: "https://example.com/zh", Ext: "json3"},
			},
		},
		{
			name: "meta on last line after warnings",
			out:  "WARNING: some notice\n{'en': {'ext': 'json3', 'url': 'https://example.com/en'}}\n",
			want: map[string]subtitleDesc{"en": {URL: "https://example.com/en", Ext: "json3"}},
		},
		{name: "none output", out: "None\n", want: nil},
		{name: "empty output", out: "", want: nil},
		{name: "broken dict", out: "{'en': {", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSubtitleMeta(tt.out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSubtitleMeta() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.want == nil {
				if len(got) != 0 {
					t.Errorf("parseSubtitleMeta() = %v, want empty", got)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseSubtitleMeta() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubtitleLangOrder(t *testing.T) {
	subs := map[string]subtitleDesc{
		"en":      {URL: "u1"},
		"ja":      {URL: "u2"},
		"zh-Hans": {URL: "u3"},
		"ko":      {URL: "u4"},
	}

	got := subtitleLangOrder(subs, []string{"zh-Hans", "zh", "en"})
	want := []string{"zh-Hans", "en", "ja", "ko"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("subtitleLangOrder() = %v, want %v", got, want)
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "only line", want: "only line"},
		{in: "first\nsecond", want: "first"},
		{in: "  padded  \nrest", want: "padded"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := firstLine(tt.in); got != tt.want {
			t.Errorf("firstLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
