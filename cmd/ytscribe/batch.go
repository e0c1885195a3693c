package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/famomatic/ytscribe/client"
	"github.com/famomatic/ytscribe/internal/textutil"
)

var batchCmd = &cobra.Command{
	Use:   "batch [url list file]",
	Short: "Extract transcripts for every video in a file",
	Long: `Reads one video ID or URL per line (blank lines and #-comments are
skipped) and writes three files per video into the output directory:
<id>_segments.txt, <id>_text.txt, and <id>.srt. Failures are logged and
skipped; the run continues with the next video.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("output-dir", "transcripts", "directory for generated files")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputs, err := readBatchFile(args[0])
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no videos listed in %s", args[0])
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	c, err := buildClient()
	if err != nil {
		return err
	}

	language := viper.GetString("language")
	start := time.Now()
	var succeeded, failed int
	for i, input := range inputs {
		logger.Info("processing video", "index", i+1, "total", len(inputs), "input", input)
		if err := processBatchVideo(c, input, language, outputDir); err != nil {
			logger.Error("extraction failed", "input", input, "error", err)
			failed++
			continue
		}
		succeeded++
	}

	logger.Info("batch completed",
		"successful", succeeded,
		"failed", failed,
		"elapsed", time.Since(start).Round(time.Second))
	if failed > 0 && succeeded == 0 {
		return fmt.Errorf("all %d videos failed", failed)
	}
	return nil
}

func processBatchVideo(c *client.Client, input, language, outputDir string) error {
	transcript, err := c.GetTranscript(context.Background(), input, language)
	if err != nil {
		return err
	}

	base := filepath.Join(outputDir, transcript.VideoID)

	if err := os.WriteFile(base+"_segments.txt", []byte(transcript.TextWithTimestamps()+"\n"), 0644); err != nil {
		return err
	}
	cleaned := textutil.Clean(transcript.Text())
	if err := os.WriteFile(base+"_text.txt", []byte(cleaned+"\n"), 0644); err != nil {
		return err
	}
	return client.WriteTranscript(base+".srt", transcript, client.SubtitleOutputFormatSRT)
}

func readBatchFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var inputs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	return inputs, scanner.Err()
}
