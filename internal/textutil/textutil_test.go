package textutil

import (
	"strings"
	"testing"

	"github.com/famomatic/ytscribe/internal/timedtext"
)

func seg(text string, start, dur float64) timedtext.Segment {
	return timedtext.Segment{Text: text, Start: start, Duration: dur, End: start + dur}
}

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{59.9, "00:59"},
		{75, "01:15"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3725, "01:02:05"},
	}
	for _, tc := range cases {
		if got := FormatTimestamp(tc.seconds); got != tc.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestCleanRemovesArtifactsAndFixesPunctuation(t *testing.T) {
	got := Clean("hello [Music] world . next sentence.another one")
	if strings.Contains(got, "[Music]") {
		t.Fatalf("artifact survived: %q", got)
	}
	if strings.Contains(got, " .") {
		t.Fatalf("space before punctuation survived: %q", got)
	}
	if !strings.Contains(got, ". Another") {
		t.Fatalf("sentence not capitalized with space restored: %q", got)
	}
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	if got := Clean("a  b\n\tc"); got != "A b c" {
		t.Fatalf("Clean() = %q", got)
	}
}

func TestKeywordsFiltersStopWordsAndShortWords(t *testing.T) {
	segments := []timedtext.Segment{
		seg("the quick brown fox and the quick dog", 0, 2),
		seg("a quick brown fox is ok", 2, 2),
	}
	keywords := Keywords(segments, 3)
	if len(keywords) != 3 {
		t.Fatalf("keywords = %+v, want 3 entries", keywords)
	}
	if keywords[0].Word != "quick" || keywords[0].Count != 3 {
		t.Fatalf("top keyword = %+v, want quick x3", keywords[0])
	}
	for _, kw := range keywords {
		if kw.Word == "the" || kw.Word == "and" || kw.Word == "ok" {
			t.Fatalf("stop or short word leaked into ranking: %+v", keywords)
		}
	}
}

func TestKeywordsBreaksTiesAlphabetically(t *testing.T) {
	segments := []timedtext.Segment{seg("zebra apple zebra apple", 0, 1)}
	keywords := Keywords(segments, 2)
	if keywords[0].Word != "apple" || keywords[1].Word != "zebra" {
		t.Fatalf("tie order = %+v, want alphabetical", keywords)
	}
}

func TestSearchReturnsContextWindow(t *testing.T) {
	segments := []timedtext.Segment{
		seg("one two three target five six seven eight", 12, 3),
		seg("no hit here", 15, 3),
	}
	matches := Search(segments, "target", 2)
	if len(matches) != 1 {
		t.Fatalf("matches = %+v, want 1", matches)
	}
	m := matches[0]
	if m.Text != "two three target five six" {
		t.Fatalf("context window = %q", m.Text)
	}
	if m.Timestamp != "00:12" || m.TimeSeconds != 12 {
		t.Fatalf("timestamp = %q (%v)", m.Timestamp, m.TimeSeconds)
	}
	if m.FullSegment != segments[0].Text {
		t.Fatalf("full segment = %q", m.FullSegment)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	segments := []timedtext.Segment{seg("Climate Change matters", 0, 2)}
	if matches := Search(segments, "climate change", 1); len(matches) != 1 {
		t.Fatalf("matches = %+v, want 1", matches)
	}
}

func TestSearchClampsWindowAtSegmentEdges(t *testing.T) {
	segments := []timedtext.Segment{seg("target word", 0, 1)}
	matches := Search(segments, "target", 10)
	if len(matches) != 1 || matches[0].Text != "target word" {
		t.Fatalf("matches = %+v", matches)
	}
}

func TestSummarizePrefersKeywordDenseSentences(t *testing.T) {
	segments := []timedtext.Segment{
		seg("rockets launch into orbit today. rockets carry satellites into orbit every week.", 0, 5),
		seg("yes. the launch of heavy rockets into polar orbit is the mission plan for this year.", 5, 5),
	}
	summary := Summarize(segments, 1)
	if summary == "" {
		t.Fatalf("empty summary")
	}
	if !strings.HasSuffix(summary, ".") {
		t.Fatalf("summary not terminated: %q", summary)
	}
	if !strings.Contains(strings.ToLower(summary), "rockets") {
		t.Fatalf("summary missed dominant topic: %q", summary)
	}
	if strings.Contains(summary, "yes") {
		t.Fatalf("short sentence should be excluded: %q", summary)
	}
}

func TestSummarizeEmptyTranscript(t *testing.T) {
	if got := Summarize(nil, 3); got != "" {
		t.Fatalf("Summarize(nil) = %q, want empty", got)
	}
}

func TestCollectStats(t *testing.T) {
	segments := []timedtext.Segment{
		seg("hello world this is fine.", 0, 30),
		seg("second segment with a few more words!", 30, 30),
	}
	stats := CollectStats(segments)
	if stats.SegmentCount != 2 {
		t.Fatalf("segment count = %d", stats.SegmentCount)
	}
	if stats.DurationSeconds != 60 || stats.DurationFormatted != "01:00" {
		t.Fatalf("duration = %v (%q)", stats.DurationSeconds, stats.DurationFormatted)
	}
	if stats.WordCount != 12 {
		t.Fatalf("word count = %d, want 12", stats.WordCount)
	}
	if stats.SentenceCount != 2 {
		t.Fatalf("sentence count = %d, want 2", stats.SentenceCount)
	}
	if stats.WordsPerMinute != 12 {
		t.Fatalf("wpm = %v, want 12", stats.WordsPerMinute)
	}
	if stats.AverageWordsPerSegment != 6 {
		t.Fatalf("avg words per segment = %v, want 6", stats.AverageWordsPerSegment)
	}
	if stats.LongestSegment != "second segment with a few more words!" {
		t.Fatalf("longest segment = %q", stats.LongestSegment)
	}
}

func TestCollectStatsEmptyTranscript(t *testing.T) {
	if got := CollectStats(nil); got != (Stats{}) {
		t.Fatalf("CollectStats(nil) = %+v, want zero value", got)
	}
}
