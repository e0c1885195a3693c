// Package textutil post-processes extracted transcripts: cleanup,
// keyword extraction, search, extractive summaries, and statistics.
package textutil

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/famomatic/ytscribe/internal/timedtext"
)

var (
	whitespacePattern   = regexp.MustCompile(`\s+`)
	artifactPattern     = regexp.MustCompile(`(?i)\[(?:Music|Applause|Laughter)\]`)
	spaceBeforePunct    = regexp.MustCompile(`\s+([.!?])`)
	missingSpaceAfter   = regexp.MustCompile(`([.!?])\s*([a-z])`)
	nonAlphabetic       = regexp.MustCompile(`[^a-zA-Z\s]`)
	sentenceDelimiter   = regexp.MustCompile(`[.!?]+`)
	minSummaryWordCount = 5
)

// FormatTimestamp renders seconds as MM:SS, or HH:MM:SS past the hour.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// Clean removes caption artifacts and normalizes punctuation spacing,
// then capitalizes sentence starts.
func Clean(text string) string {
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = artifactPattern.ReplaceAllString(text, "")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = missingSpaceAfter.ReplaceAllString(text, "$1 $2")

	sentences := strings.Split(text, ". ")
	for i, s := range sentences {
		sentences[i] = capitalize(s)
	}
	return strings.TrimSpace(strings.Join(sentences, ". "))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// JoinText flattens segments into one space-separated string.
func JoinText(segments []timedtext.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}

// Keyword is one ranked word with its occurrence count.
type Keyword struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`the a an and or but in on at to for of with
by is are was were be been have has had do does did will would could should may
might can this that these those i you he she it we they me him her us them my
your his its our their so if then than as very too much many more most some any
all no not now here there when where why how what who which up down out off over
under again further once just only get got go going like know see one two three
also well way back time good right think`) {
		stopWords[w] = struct{}{}
	}
}

// Keywords ranks the most frequent non-stop words across all segments.
// Ties break alphabetically so the ranking is stable.
func Keywords(segments []timedtext.Segment, topN int) []Keyword {
	text := strings.ToLower(JoinText(segments))
	text = nonAlphabetic.ReplaceAllString(text, "")

	counts := make(map[string]int)
	for _, word := range strings.Fields(text) {
		if len(word) <= 2 {
			continue
		}
		if _, skip := stopWords[word]; skip {
			continue
		}
		counts[word]++
	}

	ranked := make([]Keyword, 0, len(counts))
	for word, count := range counts {
		ranked = append(ranked, Keyword{Word: word, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Match is one search hit with its surrounding context window.
type Match struct {
	Timestamp   string  `json:"timestamp"`
	TimeSeconds float64 `json:"time_seconds"`
	Text        string  `json:"text"`
	FullSegment string  `json:"full_segment"`
}

// Search finds case-insensitive occurrences of query across segments and
// returns each with contextWords words of context on either side.
func Search(segments []timedtext.Segment, query string, contextWords int) []Match {
	queryLower := strings.ToLower(query)
	queryWords := len(strings.Fields(query))
	if queryLower == "" {
		return nil
	}

	var matches []Match
	for _, segment := range segments {
		textLower := strings.ToLower(segment.Text)
		matchStart := strings.Index(textLower, queryLower)
		if matchStart < 0 {
			continue
		}

		words := strings.Fields(segment.Text)
		wordStart := len(strings.Fields(segment.Text[:matchStart]))
		start := wordStart - contextWords
		if start < 0 {
			start = 0
		}
		end := wordStart + queryWords + contextWords
		if end > len(words) {
			end = len(words)
		}

		matches = append(matches, Match{
			Timestamp:   FormatTimestamp(segment.Start),
			TimeSeconds: segment.Start,
			Text:        strings.Join(words[start:end], " "),
			FullSegment: segment.Text,
		})
	}
	return matches
}

// Summarize builds a simple extractive summary: sentences are scored on
// overlap with the transcript's top keywords plus a small length bonus,
// and the best maxSentences are joined in score order.
func Summarize(segments []timedtext.Segment, maxSentences int) string {
	sentences := splitSentences(JoinText(segments))
	if len(sentences) == 0 {
		return ""
	}

	keywordSet := make(map[string]struct{})
	for _, kw := range Keywords(segments, 10) {
		keywordSet[kw.Word] = struct{}{}
	}

	type scored struct {
		score    float64
		sentence string
	}
	var candidates []scored
	for _, sentence := range sentences {
		words := strings.Fields(sentence)
		if len(words) < minSummaryWordCount {
			continue
		}
		seen := make(map[string]struct{})
		overlap := 0
		for _, w := range words {
			w = strings.ToLower(w)
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			if _, ok := keywordSet[w]; ok {
				overlap++
			}
		}
		score := float64(overlap) + float64(len(sentence))/100
		candidates = append(candidates, scored{score: score, sentence: sentence})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if maxSentences > 0 && len(candidates) > maxSentences {
		candidates = candidates[:maxSentences]
	}
	if len(candidates) == 0 {
		return ""
	}

	parts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		parts = append(parts, c.sentence)
	}
	return strings.Join(parts, ". ") + "."
}

func splitSentences(text string) []string {
	var sentences []string
	for _, s := range sentenceDelimiter.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// Stats summarizes transcript size and pacing.
type Stats struct {
	SegmentCount           int     `json:"segment_count"`
	DurationSeconds        float64 `json:"duration_seconds"`
	DurationFormatted      string  `json:"duration_formatted"`
	WordCount              int     `json:"word_count"`
	CharacterCount         int     `json:"character_count"`
	SentenceCount          int     `json:"sentence_count"`
	WordsPerMinute         float64 `json:"words_per_minute"`
	AverageWordsPerSegment float64 `json:"average_words_per_segment"`
	LongestSegment         string  `json:"longest_segment"`
	FirstWords             string  `json:"first_words"`
	LastWords              string  `json:"last_words"`
}

// CollectStats computes transcript statistics. The zero value is returned
// for an empty transcript.
func CollectStats(segments []timedtext.Segment) Stats {
	if len(segments) == 0 {
		return Stats{}
	}

	var duration float64
	longest := segments[0].Text
	for _, s := range segments {
		if end := s.Start + s.Duration; end > duration {
			duration = end
		}
		if len(s.Text) > len(longest) {
			longest = s.Text
		}
	}

	fullText := JoinText(segments)
	wordCount := len(strings.Fields(fullText))

	var wpm float64
	if duration > 0 {
		wpm = round1(float64(wordCount) / duration * 60)
	}

	return Stats{
		SegmentCount:           len(segments),
		DurationSeconds:        duration,
		DurationFormatted:      FormatTimestamp(duration),
		WordCount:              wordCount,
		CharacterCount:         len(fullText),
		SentenceCount:          len(splitSentences(fullText)),
		WordsPerMinute:         wpm,
		AverageWordsPerSegment: round1(float64(wordCount) / float64(len(segments))),
		LongestSegment:         truncate(longest, 100),
		FirstWords:             truncate(fullText, 100),
		LastWords:              lastWords(fullText, 100),
	}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func lastWords(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
