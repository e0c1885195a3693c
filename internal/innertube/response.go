package innertube

import "strings"

// PlayerResponse is the top-level response from the /player endpoint,
// trimmed to the fields transcript extraction reads.
type PlayerResponse struct {
	PlayabilityStatus PlayabilityStatus `json:"playabilityStatus"`
	VideoDetails      VideoDetails      `json:"videoDetails"`
	Microformat       Microformat       `json:"microformat"`
	Captions          Captions          `json:"captions"`
}

type PlayabilityStatus struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (p *PlayabilityStatus) IsOK() bool {
	return p.Status == "OK"
}

type VideoDetails struct {
	VideoID          string   `json:"videoId"`
	Title            string   `json:"title"`
	LengthSeconds    string   `json:"lengthSeconds"`
	Keywords         []string `json:"keywords"`
	ChannelID        string   `json:"channelId"`
	ShortDescription string   `json:"shortDescription"`
	ViewCount        string   `json:"viewCount"`
	Author           string   `json:"author"`
	IsLiveContent    bool     `json:"isLiveContent"`
}

type Microformat struct {
	PlayerMicroformatRenderer PlayerMicroformatRenderer `json:"playerMicroformatRenderer"`
}

type PlayerMicroformatRenderer struct {
	Title            SimpleText `json:"title"`
	LengthSeconds    string     `json:"lengthSeconds"`
	Category         string     `json:"category"`
	PublishDate      string     `json:"publishDate"`
	OwnerChannelName string     `json:"ownerChannelName"`
	ViewCount        string     `json:"viewCount"`
}

type SimpleText struct {
	SimpleText string `json:"simpleText"`
}

type Captions struct {
	PlayerCaptionsTracklistRenderer PlayerCaptionsTracklistRenderer `json:"playerCaptionsTracklistRenderer"`
}

type PlayerCaptionsTracklistRenderer struct {
	CaptionTracks []CaptionTrack `json:"captionTracks"`
}

// Tracks returns the caption track list, nil when the video has none.
func (c Captions) Tracks() []CaptionTrack {
	return c.PlayerCaptionsTracklistRenderer.CaptionTracks
}

type CaptionTrack struct {
	BaseURL      string   `json:"baseUrl"`
	Name         LangText `json:"name"`
	VssID        string   `json:"vssId"`
	LanguageCode string   `json:"languageCode"`
	Kind         string   `json:"kind,omitempty"`
}

// IsAutoGenerated reports whether the track holds speech-recognition
// captions rather than author-provided ones.
func (t CaptionTrack) IsAutoGenerated() bool {
	return t.Kind == "asr"
}

type LangText struct {
	SimpleText string    `json:"simpleText"`
	Runs       []TextRun `json:"runs"`
}

type TextRun struct {
	Text string `json:"text"`
}

// Text flattens either representation of a localized string.
func (t LangText) Text() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var b strings.Builder
	for _, run := range t.Runs {
		b.WriteString(run.Text)
	}
	return b.String()
}
