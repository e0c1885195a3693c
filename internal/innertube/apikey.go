package innertube

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
)

var innertubeAPIKeyPattern = regexp.MustCompile(`(?i)["']INNERTUBE_API_KEY["']\s*:\s*["']([^"']+)["']`)

// ErrChallengePage indicates the watch page came back as an anti-bot
// challenge instead of real content.
var ErrChallengePage = errors.New("anti-bot challenge page")

// Fetcher performs a GET and returns the body and status code. The
// transport executor satisfies it, so watch-page fetches ride the same
// retry, rate-limit, and proxy path as API calls.
type Fetcher interface {
	GetBytes(ctx context.Context, rawURL string, header http.Header) ([]byte, int, error)
}

// APIKeyResolver scrapes the current Innertube API key from a watch page
// and caches it per host. When scraping fails the profile's baked-in key
// is returned, so resolution never blocks extraction outright.
type APIKeyResolver struct {
	fetcher Fetcher
	mu      sync.RWMutex
	cache   map[string]string
}

// NewAPIKeyResolver builds a resolver that fetches through fetcher. A nil
// fetcher disables scraping; Resolve then always returns the static key.
func NewAPIKeyResolver(fetcher Fetcher) *APIKeyResolver {
	return &APIKeyResolver{
		fetcher: fetcher,
		cache:   make(map[string]string),
	}
}

func (r *APIKeyResolver) Resolve(ctx context.Context, profile ClientProfile, videoID string) (string, error) {
	fallback := strings.TrimSpace(profile.APIKey)
	if fallback == "" {
		fallback = defaultInnertubeAPIKey
	}
	if r == nil || r.fetcher == nil {
		return fallback, nil
	}

	cacheKey := profileCacheKey(profile)
	if cacheKey == "" {
		return fallback, nil
	}

	if key, ok := r.get(cacheKey); ok {
		if strings.TrimSpace(key) == "" {
			return fallback, nil
		}
		return key, nil
	}

	key, err := r.fetchFromWatch(ctx, profile, videoID)
	if err != nil {
		// A challenge page is transient; leave the cache empty so the
		// next resolve tries the watch page again.
		if !errors.Is(err, ErrChallengePage) {
			r.set(cacheKey, fallback)
		}
		return fallback, err
	}
	if strings.TrimSpace(key) == "" {
		r.set(cacheKey, fallback)
		return fallback, nil
	}

	r.set(cacheKey, key)
	return key, nil
}

func (r *APIKeyResolver) get(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.cache[key]
	return v, ok
}

func (r *APIKeyResolver) set(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[key] = value
}

func (r *APIKeyResolver) fetchFromWatch(ctx context.Context, profile ClientProfile, videoID string) (string, error) {
	header := make(http.Header)
	if profile.UserAgent != "" {
		header.Set("User-Agent", profile.UserAgent)
	}
	header.Set("Accept-Language", "en-US,en;q=0.9")

	body, status, err := r.fetcher.GetBytes(ctx, watchPageURL(profile, videoID), header)
	if err != nil {
		return "", err
	}

	if bytes.Contains(bytes.ToLower(body), []byte("recaptcha")) {
		return "", fmt.Errorf("%w: watch page", ErrChallengePage)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("watch request failed: status=%d", status)
	}

	match := innertubeAPIKeyPattern.FindSubmatch(body)
	if len(match) < 2 {
		return "", fmt.Errorf("INNERTUBE_API_KEY not found in watch page")
	}
	return strings.TrimSpace(string(match[1])), nil
}

func profileCacheKey(profile ClientProfile) string {
	host := strings.ToLower(strings.TrimSpace(profile.Host))
	if host == "" {
		return ""
	}
	id := strings.ToLower(strings.TrimSpace(profile.ID))
	if id == "" {
		id = strings.ToLower(strings.TrimSpace(profile.Name))
	}
	return host + "|" + id
}

func watchPageURL(profile ClientProfile, videoID string) string {
	host := strings.TrimSpace(profile.Host)
	if host == "" {
		host = "www.youtube.com"
	}
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return "https://" + host
	}
	return "https://" + host + "/watch?v=" + videoID
}
