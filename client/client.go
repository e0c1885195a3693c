package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/famomatic/ytscribe/internal/innertube"
	"github.com/famomatic/ytscribe/internal/timedtext"
	"github.com/famomatic/ytscribe/internal/transport"
)

// Client is the high-level transcript extraction client.
type Client struct {
	config   Config
	profile  innertube.ClientProfile
	executor *transport.Executor
	resolver *innertube.APIKeyResolver
	logger   Logger
}

// New creates a transcript client. The zero Config is usable: direct
// connection, Android client, baked-in API key fallback.
func New(config Config) *Client {
	config = config.withDefaults()

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = defaultHTTPClient(config.ProxyURL, config.Timeout)
	}

	executor := transport.New(transport.Config{
		Retry: transport.RetryConfig{
			MaxRetries:    config.MaxRetries,
			BackoffFactor: config.BackoffFactor,
			Timeout:       config.Timeout,
		},
		HTTPClient: httpClient,
		Pool:       config.ProxyPool,
		MinDelay:   config.MinDelay,
		Logger:     config.Logger,
	})

	// The resolver shares the executor so watch-page fetches get the
	// same retries, pacing, and proxy routing as every other call.
	var resolver *innertube.APIKeyResolver
	if config.DisableDynamicAPIKeyResolution {
		resolver = innertube.NewAPIKeyResolver(nil)
	} else {
		resolver = innertube.NewAPIKeyResolver(executor)
	}

	profile := innertube.AndroidClient
	if config.ClientName != "" {
		if p, ok := innertube.NewRegistry().Get(config.ClientName); ok {
			profile = p
		} else {
			config.Logger.Warnf("unknown client %q, using %s", config.ClientName, profile.ID)
		}
	}

	return &Client{
		config:   config,
		profile:  profile,
		executor: executor,
		resolver: resolver,
		logger:   config.Logger,
	}
}

// GetTranscript extracts the timed transcript for the given video ID or
// URL, selecting the caption track for language. Manual tracks are
// preferred over auto-generated ones; when the language has no track the
// first available one is used unless StrictLanguage is set.
func (c *Client) GetTranscript(ctx context.Context, input, language string) (*Transcript, error) {
	videoID, err := ExtractVideoID(input)
	if err != nil {
		return nil, err
	}

	resp, err := c.fetchPlayerResponse(ctx, videoID)
	if err != nil {
		return nil, err
	}

	tracks := resp.Captions.Tracks()
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: video=%s", ErrNoCaptions, videoID)
	}
	c.logger.Infof("found %d caption tracks for video=%s", len(tracks), videoID)

	track, matched := selectTrack(tracks, language)
	if !matched {
		if c.config.StrictLanguage {
			return nil, fmt.Errorf("%w: requested=%s available=%v", ErrNoMatchingLanguage, language, languageCodes(tracks))
		}
		c.logger.Warnf("language %q not found, using first available track (%s)", language, track.LanguageCode)
	}

	body, status, err := c.executor.GetBytes(ctx, track.BaseURL, timedtextHeaders(c.profile))
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("timedtext fetch failed: status=%d video=%s", status, videoID)
	}

	segments, err := timedtext.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	c.logger.Debugf("parsed %d transcript segments for video=%s", len(segments), videoID)

	return &Transcript{
		VideoID:       videoID,
		Language:      track.LanguageCode,
		TrackName:     track.Name.Text(),
		AutoGenerated: track.IsAutoGenerated(),
		Entries:       entriesFromSegments(segments),
	}, nil
}

// GetTranscriptText extracts the transcript and flattens it into one
// space-separated string.
func (c *Client) GetTranscriptText(ctx context.Context, input, language string) (string, error) {
	transcript, err := c.GetTranscript(ctx, input, language)
	if err != nil {
		return "", err
	}
	return transcript.Text(), nil
}

// GetTranscriptWithTimestamps extracts the transcript formatted as
// "[MM:SS] text" lines.
func (c *Client) GetTranscriptWithTimestamps(ctx context.Context, input, language string) (string, error) {
	transcript, err := c.GetTranscript(ctx, input, language)
	if err != nil {
		return "", err
	}
	return transcript.TextWithTimestamps(), nil
}

// Language describes one available caption track.
type Language struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	AutoGenerated bool   `json:"auto_generated"`
}

// AvailableLanguages lists the caption tracks offered for a video.
func (c *Client) AvailableLanguages(ctx context.Context, input string) ([]Language, error) {
	videoID, err := ExtractVideoID(input)
	if err != nil {
		return nil, err
	}

	resp, err := c.fetchPlayerResponse(ctx, videoID)
	if err != nil {
		return nil, err
	}

	tracks := resp.Captions.Tracks()
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: video=%s", ErrNoCaptions, videoID)
	}

	languages := make([]Language, 0, len(tracks))
	for _, track := range tracks {
		languages = append(languages, Language{
			Code:          track.LanguageCode,
			Name:          track.Name.Text(),
			AutoGenerated: track.IsAutoGenerated(),
		})
	}
	return languages, nil
}

func (c *Client) fetchPlayerResponse(ctx context.Context, videoID string) (*innertube.PlayerResponse, error) {
	apiKey := c.config.APIKey
	if apiKey == "" {
		resolved, err := c.resolver.Resolve(ctx, innertube.WebClient, videoID)
		if err != nil {
			if errors.Is(err, innertube.ErrChallengePage) {
				return nil, fmt.Errorf("%w: watch page for video=%s", ErrUpstreamBlocked, videoID)
			}
			c.logger.Warnf("api key resolution failed, using fallback: %v", err)
		}
		apiKey = resolved
	}

	payload, err := json.Marshal(innertube.NewPlayerRequest(c.profile, videoID))
	if err != nil {
		return nil, err
	}

	c.logger.Debugf("calling player endpoint as %s for video=%s", c.profile.Name, videoID)
	resp, err := c.executor.Do(ctx, http.MethodPost, c.profile.PlayerEndpoint(apiKey), c.profile.SignatureHeaders(), payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body := new(bytes.Buffer)
	if _, err := body.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	raw := body.Bytes()

	if bytes.Contains(bytes.ToLower(raw), []byte("recaptcha")) {
		return nil, fmt.Errorf("%w: video=%s", ErrUpstreamBlocked, videoID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player request failed: status=%d video=%s", resp.StatusCode, videoID)
	}

	var player innertube.PlayerResponse
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if !player.PlayabilityStatus.IsOK() {
		return nil, &PlayabilityError{
			Status: player.PlayabilityStatus.Status,
			Reason: player.PlayabilityStatus.Reason,
		}
	}
	return &player, nil
}

// selectTrack picks the track for the requested language, preferring
// manual captions over auto-generated ones. When no track matches, the
// first track is returned with matched=false.
func selectTrack(tracks []innertube.CaptionTrack, language string) (innertube.CaptionTrack, bool) {
	var fallback *innertube.CaptionTrack
	for i := range tracks {
		if tracks[i].LanguageCode != language {
			continue
		}
		if !tracks[i].IsAutoGenerated() {
			return tracks[i], true
		}
		if fallback == nil {
			fallback = &tracks[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return tracks[0], false
}

func languageCodes(tracks []innertube.CaptionTrack) []string {
	codes := make([]string, 0, len(tracks))
	for _, t := range tracks {
		codes = append(codes, t.LanguageCode)
	}
	return codes
}

func timedtextHeaders(profile innertube.ClientProfile) http.Header {
	h := make(http.Header)
	if profile.UserAgent != "" {
		h.Set("User-Agent", profile.UserAgent)
	}
	return h
}
