package sources

import (
	"encoding/json"
	"encoding/xml"
	"html"
	"io"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// json3Doc maps the event/segment caption payload: a list of events, each
// optionally carrying text segments.
type json3Doc struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// DecodeJSON3 extracts plain text from a json3 caption payload. Segments
// within an event concatenate with no separator; events join with single
// spaces. Malformed input decodes to "", never an error.
func DecodeJSON3(raw string) string {
	var doc json3Doc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return ""
	}
	var parts []string
	for _, ev := range doc.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var sb strings.Builder
		for _, seg := range ev.Segs {
			sb.WriteString(seg.UTF8)
		}
		chunk := strings.TrimSpace(strings.ReplaceAll(html.UnescapeString(sb.String()), "\n", " "))
		if chunk != "" {
			parts = append(parts, chunk)
		}
	}
	return engine.CollapseSpace(strings.Join(parts, " "))
}

// DecodeTimedText extracts plain text from a timedtext XML payload: every
// <text> element's content, unescaped and joined with single spaces.
// Caption text is often double-encoded, hence the extra unescape on top of
// the XML decoder's own. Unparseable XML decodes to "".
func DecodeTimedText(xmlText string) string {
	dec := xml.NewDecoder(strings.NewReader(xmlText))
	var parts []string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ""
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "text" {
			continue
		}
		var node struct {
			Text string `xml:",chardata"`
		}
		if err := dec.DecodeElement(&node, &se); err != nil {
			return ""
		}
		t := strings.TrimSpace(strings.ReplaceAll(html.UnescapeString(node.Text), "\n", " "))
		if t != "" {
			parts = append(parts, t)
		}
	}
	return engine.CollapseSpace(strings.Join(parts, " "))
}
