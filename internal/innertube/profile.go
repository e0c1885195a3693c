package innertube

import (
	"net/http"
	"strconv"
)

// ClientProfile describes one Innertube client identity: the name and
// version reported in the request context plus the headers that have to
// accompany every call made as that client.
type ClientProfile struct {
	// ID is the registry alias used for configuration and diagnostics
	// (e.g. "android"), distinct from the Innertube clientName ("ANDROID").
	ID            string
	Name          string
	Version       string
	APIKey        string
	UserAgent     string
	ContextNameID int
	Host          string

	OSName            string
	OSVersion         string
	AndroidSDKVersion int
}

// SignatureHeaders returns the header set that marks a request as coming
// from this client. The numeric client name header must agree with the
// clientName in the JSON context or the player endpoint rejects the call.
func (p ClientProfile) SignatureHeaders() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	if p.UserAgent != "" {
		h.Set("User-Agent", p.UserAgent)
	}
	if p.ContextNameID > 0 {
		h.Set("X-YouTube-Client-Name", strconv.Itoa(p.ContextNameID))
	}
	if p.Version != "" {
		h.Set("X-YouTube-Client-Version", p.Version)
	}
	return h
}

// PlayerEndpoint returns the /player URL for this profile's host.
func (p ClientProfile) PlayerEndpoint(apiKey string) string {
	host := p.Host
	if host == "" {
		host = "www.youtube.com"
	}
	return "https://" + host + "/youtubei/v1/player?key=" + apiKey
}
