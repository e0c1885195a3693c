package client

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// SubtitleOutputFormat is a transcript serialization target format.
type SubtitleOutputFormat string

const (
	SubtitleOutputFormatSRT SubtitleOutputFormat = "srt"
	SubtitleOutputFormatVTT SubtitleOutputFormat = "vtt"
)

// ResolveSubtitleOutputFormat selects an output format from preference
// strings such as "vtt/srt" or "best". Unknown values fall back to SRT.
func ResolveSubtitleOutputFormat(raw string) SubtitleOutputFormat {
	tokens := strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return r == '/' || r == ','
	})
	for _, token := range tokens {
		switch strings.TrimSpace(token) {
		case "best", "srt":
			return SubtitleOutputFormatSRT
		case "vtt":
			return SubtitleOutputFormatVTT
		}
	}
	return SubtitleOutputFormatSRT
}

// FormatSRT renders the transcript as an SRT document.
func FormatSRT(transcript *Transcript) string {
	var b strings.Builder
	for i, entry := range transcript.Entries {
		start := formatSRTTimestamp(entry.StartSec)
		end := formatSRTTimestamp(entry.StartSec + entry.DurSec)
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, start, end, strings.TrimSpace(entry.Text))
	}
	return b.String()
}

// FormatVTT renders the transcript as a WebVTT document.
func FormatVTT(transcript *Transcript) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, entry := range transcript.Entries {
		start := formatVTTTimestamp(entry.StartSec)
		end := formatVTTTimestamp(entry.StartSec + entry.DurSec)
		fmt.Fprintf(&b, "%s --> %s\n%s\n\n", start, end, strings.TrimSpace(entry.Text))
	}
	return b.String()
}

// WriteTranscript serializes transcript entries to the selected subtitle
// format, creating parent directories as needed.
func WriteTranscript(path string, transcript *Transcript, format SubtitleOutputFormat) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	var content string
	switch format {
	case SubtitleOutputFormatVTT:
		content = FormatVTT(transcript)
	default:
		content = FormatSRT(transcript)
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func formatSRTTimestamp(sec float64) string {
	return formatSubtitleTimestamp(sec, ',')
}

func formatVTTTimestamp(sec float64) string {
	return formatSubtitleTimestamp(sec, '.')
}

func formatSubtitleTimestamp(sec float64, millisSep rune) string {
	if sec < 0 {
		sec = 0
	}
	totalMs := int64(math.Round(sec * 1000))
	hours := totalMs / (60 * 60 * 1000)
	minutes := (totalMs / (60 * 1000)) % 60
	seconds := (totalMs / 1000) % 60
	millis := totalMs % 1000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, seconds, millisSep, millis)
}
