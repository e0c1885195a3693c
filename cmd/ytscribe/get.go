package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/famomatic/ytscribe/client"
	"github.com/famomatic/ytscribe/internal/textutil"
)

var getCmd = &cobra.Command{
	Use:   "get [video id or url]",
	Short: "Extract a transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	f := getCmd.Flags()
	f.StringP("format", "f", "text", "output format: text, segments, srt, vtt, json, stats")
	f.Bool("clean", false, "clean artifacts and punctuation in text output")
	f.Int("summary", 0, "also print an extractive summary of N sentences")
	f.Int("keywords", 0, "also print the top N keywords")
	f.String("search", "", "also search the transcript for a phrase")
	f.Int("context", 5, "context words on each side of a search hit")
	f.StringP("output", "o", "", "write the transcript to a file instead of stdout")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	c, err := buildClient()
	if err != nil {
		return err
	}

	language := viper.GetString("language")
	logger.Info("extracting transcript", "video", args[0], "language", language)
	transcript, err := c.GetTranscript(context.Background(), args[0], language)
	if err != nil {
		return err
	}
	segments := transcript.Segments()

	if n, _ := cmd.Flags().GetInt("keywords"); n > 0 {
		fmt.Println("Keywords:")
		for _, kw := range textutil.Keywords(segments, n) {
			fmt.Printf("  %s: %d\n", kw.Word, kw.Count)
		}
		fmt.Println()
	}
	if query, _ := cmd.Flags().GetString("search"); query != "" {
		contextWords, _ := cmd.Flags().GetInt("context")
		matches := textutil.Search(segments, query, contextWords)
		fmt.Printf("Matches for %q: %d\n", query, len(matches))
		for _, m := range matches {
			fmt.Printf("  [%s] %s\n", m.Timestamp, m.Text)
		}
		fmt.Println()
	}
	if n, _ := cmd.Flags().GetInt("summary"); n > 0 {
		fmt.Println("Summary:")
		fmt.Println(textutil.Summarize(segments, n))
		fmt.Println()
	}

	rendered, err := renderTranscript(cmd, transcript)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
			return err
		}
		logger.Info("transcript written", "path", path)
		return nil
	}
	fmt.Println(rendered)
	return nil
}

func renderTranscript(cmd *cobra.Command, transcript *client.Transcript) (string, error) {
	format, _ := cmd.Flags().GetString("format")
	clean, _ := cmd.Flags().GetBool("clean")

	switch strings.ToLower(format) {
	case "text":
		text := transcript.Text()
		if clean {
			text = textutil.Clean(text)
		}
		return text, nil
	case "segments":
		return transcript.TextWithTimestamps(), nil
	case "srt":
		return client.FormatSRT(transcript), nil
	case "vtt":
		return client.FormatVTT(transcript), nil
	case "json":
		data, err := json.MarshalIndent(transcript, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "stats":
		return renderStats(textutil.CollectStats(transcript.Segments())), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

func renderStats(stats textutil.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Segments:           %d\n", stats.SegmentCount)
	fmt.Fprintf(&b, "Duration:           %s (%.1fs)\n", stats.DurationFormatted, stats.DurationSeconds)
	fmt.Fprintf(&b, "Words:              %d\n", stats.WordCount)
	fmt.Fprintf(&b, "Characters:         %d\n", stats.CharacterCount)
	fmt.Fprintf(&b, "Sentences:          %d\n", stats.SentenceCount)
	fmt.Fprintf(&b, "Words per minute:   %.1f\n", stats.WordsPerMinute)
	fmt.Fprintf(&b, "Words per segment:  %.1f\n", stats.AverageWordsPerSegment)
	fmt.Fprintf(&b, "First words:        %s\n", stats.FirstWords)
	fmt.Fprintf(&b, "Last words:         %s", stats.LastWords)
	return b.String()
}
