package client

import (
	"fmt"
	"strings"

	"github.com/famomatic/ytscribe/internal/textutil"
	"github.com/famomatic/ytscribe/internal/timedtext"
)

// TranscriptEntry is one caption cue with times in seconds.
type TranscriptEntry struct {
	Text     string  `json:"text"`
	StartSec float64 `json:"start"`
	DurSec   float64 `json:"duration"`
	EndSec   float64 `json:"end"`
}

// Transcript is the full extraction result for one video and track.
type Transcript struct {
	VideoID       string            `json:"video_id"`
	Language      string            `json:"language"`
	TrackName     string            `json:"track_name"`
	AutoGenerated bool              `json:"auto_generated"`
	Entries       []TranscriptEntry `json:"entries"`
}

// Text joins all entries into one space-separated string.
func (t *Transcript) Text() string {
	parts := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		parts = append(parts, e.Text)
	}
	return strings.Join(parts, " ")
}

// TextWithTimestamps renders one "[MM:SS] text" line per entry.
func (t *Transcript) TextWithTimestamps() string {
	lines := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		lines = append(lines, fmt.Sprintf("[%s] %s", textutil.FormatTimestamp(e.StartSec), e.Text))
	}
	return strings.Join(lines, "\n")
}

// Segments converts entries to the parser's segment form, so the text
// utilities can consume a transcript directly.
func (t *Transcript) Segments() []timedtext.Segment {
	segments := make([]timedtext.Segment, 0, len(t.Entries))
	for _, e := range t.Entries {
		segments = append(segments, timedtext.Segment{
			Text:     e.Text,
			Start:    e.StartSec,
			Duration: e.DurSec,
			End:      e.EndSec,
		})
	}
	return segments
}

func entriesFromSegments(segments []timedtext.Segment) []TranscriptEntry {
	entries := make([]TranscriptEntry, 0, len(segments))
	for _, s := range segments {
		entries = append(entries, TranscriptEntry{
			Text:     s.Text,
			StartSec: s.Start,
			DurSec:   s.Duration,
			EndSec:   s.End,
		})
	}
	return entries
}
