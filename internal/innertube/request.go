package innertube

type PlayerRequest struct {
	Context        Context `json:"context"`
	VideoID        string  `json:"videoId"`
	ContentCheckOk bool    `json:"contentCheckOk,omitempty"`
	RacyCheckOk    bool    `json:"racyCheckOk,omitempty"`
}

type Context struct {
	Client ClientInfo `json:"client"`
}

type ClientInfo struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	UserAgent         string `json:"userAgent,omitempty"`
	OsName            string `json:"osName,omitempty"`
	OsVersion         string `json:"osVersion,omitempty"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	AcceptLanguage    string `json:"hl"`
	TimeZone          string `json:"timeZone"`
	UtcOffsetMinutes  int    `json:"utcOffsetMinutes"`
}

func NewPlayerRequest(profile ClientProfile, videoID string) *PlayerRequest {
	return &PlayerRequest{
		VideoID:        videoID,
		ContentCheckOk: true,
		RacyCheckOk:    true,
		Context: Context{
			Client: ClientInfo{
				ClientName:        profile.Name,
				ClientVersion:     profile.Version,
				UserAgent:         profile.UserAgent,
				OsName:            profile.OSName,
				OsVersion:         profile.OSVersion,
				AndroidSdkVersion: profile.AndroidSDKVersion,
				AcceptLanguage:    "en",
				TimeZone:          "UTC",
				UtcOffsetMinutes:  0,
			},
		},
	}
}
