package client

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleTranscript() *Transcript {
	return &Transcript{
		VideoID:  testVideoID,
		Language: "en",
		Entries: []TranscriptEntry{
			{Text: "so here we are", StartSec: 0, DurSec: 2.5, EndSec: 2.5},
			{Text: "in front of the elephants", StartSec: 2.5, DurSec: 3, EndSec: 5.5},
		},
	}
}

func TestFormatSRT(t *testing.T) {
	got := FormatSRT(sampleTranscript())
	want := "1\n00:00:00,000 --> 00:00:02,500\nso here we are\n\n" +
		"2\n00:00:02,500 --> 00:00:05,500\nin front of the elephants\n\n"
	if got != want {
		t.Fatalf("FormatSRT() = %q, want %q", got, want)
	}
}

func TestFormatVTT(t *testing.T) {
	got := FormatVTT(sampleTranscript())
	if !strings.HasPrefix(got, "WEBVTT\n\n") {
		t.Fatalf("missing WEBVTT header: %q", got)
	}
	if !strings.Contains(got, "00:00:02.500 --> 00:00:05.500") {
		t.Fatalf("VTT timestamps use dot separator: %q", got)
	}
}

func TestResolveSubtitleOutputFormat(t *testing.T) {
	cases := map[string]SubtitleOutputFormat{
		"srt":      SubtitleOutputFormatSRT,
		"vtt":      SubtitleOutputFormatVTT,
		"vtt/srt":  SubtitleOutputFormatVTT,
		"best":     SubtitleOutputFormatSRT,
		"unknown":  SubtitleOutputFormatSRT,
		"ass, vtt": SubtitleOutputFormatVTT,
	}
	for raw, want := range cases {
		if got := ResolveSubtitleOutputFormat(raw); got != want {
			t.Errorf("ResolveSubtitleOutputFormat(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestWriteTranscriptCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "sub.srt")
	if err := WriteTranscript(path, sampleTranscript(), SubtitleOutputFormatSRT); err != nil {
		t.Fatalf("WriteTranscript() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "00:00:00,000 --> 00:00:02,500") {
		t.Fatalf("unexpected file content: %q", data)
	}
}
