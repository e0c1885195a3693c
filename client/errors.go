package client

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVideoID indicates malformed input (not a video ID/url).
	ErrInvalidVideoID = errors.New("invalid video id")
	// ErrLoginRequired indicates the video needs an authenticated session
	// (typically age restriction).
	ErrLoginRequired = errors.New("login required")
	// ErrUnplayable indicates the video cannot be played at all.
	ErrUnplayable = errors.New("video unplayable")
	// ErrNoCaptions indicates the video has no caption tracks.
	ErrNoCaptions = errors.New("no transcripts available")
	// ErrNoMatchingLanguage indicates no track matched the requested
	// language while strict matching was on.
	ErrNoMatchingLanguage = errors.New("no transcript for requested language")
	// ErrUpstreamBlocked indicates an anti-bot challenge page came back
	// instead of an API response.
	ErrUpstreamBlocked = errors.New("blocked by upstream challenge")
	// ErrMalformedResponse indicates a response body that was not the
	// expected JSON or XML.
	ErrMalformedResponse = errors.New("malformed response")
)

// PlayabilityError carries the raw playability status for any non-OK
// player response. errors.Is matches ErrLoginRequired and ErrUnplayable
// for the corresponding statuses.
type PlayabilityError struct {
	Status string
	Reason string
}

func (e *PlayabilityError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("video not playable: status=%s reason=%q", e.Status, e.Reason)
	}
	return fmt.Sprintf("video not playable: status=%s", e.Status)
}

func (e *PlayabilityError) Is(target error) bool {
	switch target {
	case ErrLoginRequired:
		return e.Status == "LOGIN_REQUIRED"
	case ErrUnplayable:
		return e.Status == "UNPLAYABLE"
	}
	return false
}
