package timedtext

import (
	"math"
	"testing"
)

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParseTranscriptListFormat(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.12" dur="2.5">Hello there</text>
  <text start="2.62" dur="1.88">General Kenobi</text>
</transcript>`)

	segments, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(segments))
	}
	first := segments[0]
	if first.Text != "Hello there" || !floatEq(first.Start, 0.12) || !floatEq(first.Duration, 2.5) {
		t.Fatalf("first segment = %+v", first)
	}
	if !floatEq(first.End, 2.62) {
		t.Fatalf("first segment end = %v, want 2.62", first.End)
	}
}

func TestParseTimedtextBodyFormatConvertsMilliseconds(t *testing.T) {
	data := []byte(`<timedtext format="3">
  <body>
    <p t="1200" d="3400"><s t="0">never</s><s t="400"> gonna</s><s t="900"> give</s></p>
    <p t="4600" d="2000">you up</p>
  </body>
</timedtext>`)

	segments, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(segments))
	}
	if segments[0].Text != "never gonna give" {
		t.Fatalf("word children not flattened: %q", segments[0].Text)
	}
	if !floatEq(segments[0].Start, 1.2) || !floatEq(segments[0].Duration, 3.4) || !floatEq(segments[0].End, 4.6) {
		t.Fatalf("millisecond conversion wrong: %+v", segments[0])
	}
}

func TestParseDecodesEntitiesAndStripsMarkup(t *testing.T) {
	data := []byte(`<transcript>
  <text start="0" dur="1">it&amp;#39;s &lt;i&gt;fine&lt;/i&gt; &amp;amp; good</text>
</transcript>`)

	segments, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(segments))
	}
	if segments[0].Text != "it's fine & good" {
		t.Fatalf("text = %q", segments[0].Text)
	}
}

func TestParseDropsEmptyCues(t *testing.T) {
	data := []byte(`<transcript>
  <text start="0" dur="1">   </text>
  <text start="1" dur="1">kept</text>
  <text start="2" dur="1"></text>
</transcript>`)

	segments, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(segments) != 1 || segments[0].Text != "kept" {
		t.Fatalf("segments = %+v, want only the non-empty cue", segments)
	}
}

func TestParseCollapsesWhitespaceAndNewlines(t *testing.T) {
	data := []byte("<transcript><text start=\"0\" dur=\"1\">line one\nline  two</text></transcript>")

	segments, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if segments[0].Text != "line one line two" {
		t.Fatalf("text = %q", segments[0].Text)
	}
}

func TestParseRejectsMalformedXML(t *testing.T) {
	if _, err := Parse([]byte(`<transcript><text start="0"`)); err == nil {
		t.Fatalf("expected decode error for truncated document")
	}
}

func TestParseEmptyDocumentYieldsNoSegments(t *testing.T) {
	segments, err := Parse([]byte(`<transcript></transcript>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(segments) != 0 {
		t.Fatalf("segments = %+v, want none", segments)
	}
}
