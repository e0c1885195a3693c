// Package timedtext parses the XML cue documents served by the timedtext
// endpoint. Two layouts exist in the wild: the legacy transcript list with
// float-second attributes and the newer timedtext body with millisecond
// attributes and per-word child elements.
package timedtext

import (
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Segment is one caption cue with times in seconds.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	End      float64 `json:"end"`
}

type document struct {
	Texts      []cueNode `xml:"text"`
	Paragraphs []cueNode `xml:"body>p"`
}

type cueNode struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	T     string `xml:"t,attr"`
	D     string `xml:"d,attr"`
	Inner string `xml:",innerxml"`
}

var markupPattern = regexp.MustCompile(`<[^>]+>`)

// Parse decodes a timedtext document into cue segments. Cues whose text is
// empty after markup stripping are dropped. Millisecond attributes are
// converted to seconds.
func Parse(data []byte) ([]Segment, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode timedtext: %w", err)
	}

	if len(doc.Texts) > 0 {
		return buildSegments(doc.Texts, false), nil
	}
	return buildSegments(doc.Paragraphs, true), nil
}

func buildSegments(nodes []cueNode, milliseconds bool) []Segment {
	segments := make([]Segment, 0, len(nodes))
	for _, node := range nodes {
		text := cleanMarkup(node.Inner)
		if text == "" {
			continue
		}
		var start, dur float64
		if milliseconds {
			start = parseFloat(node.T) / 1000
			dur = parseFloat(node.D) / 1000
		} else {
			start = parseFloat(node.Start)
			dur = parseFloat(node.Dur)
		}
		segments = append(segments, Segment{
			Text:     text,
			Start:    start,
			Duration: dur,
			End:      start + dur,
		})
	}
	return segments
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// cleanMarkup strips inline tags, decodes entities, and collapses runs of
// whitespace. Cue text is often double-escaped (XML entities wrapping HTML
// ones), so it is decoded once before tag stripping and once after.
func cleanMarkup(raw string) string {
	text := html.UnescapeString(raw)
	text = markupPattern.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}
