package client

import (
	"net/http"
	"time"

	"github.com/famomatic/ytscribe/internal/proxypool"
)

// Config holds configuration for the transcript client.
type Config struct {
	// HTTPClient is the client used for making requests.
	// If nil, a default client is built (honoring ProxyURL).
	HTTPClient *http.Client

	// ProxyURL is an optional single proxy for all requests.
	// Ignored when HTTPClient or ProxyPool is set.
	ProxyURL string

	// ProxyPool rotates requests across managed proxies. Takes
	// precedence over ProxyURL.
	ProxyPool *proxypool.Manager

	// Timeout bounds each request attempt. Default 30s.
	Timeout time.Duration

	// MaxRetries is the attempt count per logical request. Default 3.
	MaxRetries int

	// BackoffFactor is the base delay doubled per failed attempt.
	// Default 750ms.
	BackoffFactor time.Duration

	// MinDelay is the minimum spacing between consecutive network
	// calls. Default 2s. Set negative to disable.
	MinDelay time.Duration

	// ClientName selects the Innertube client profile by registry ID
	// (e.g. "android", "web"). Default is android; unknown names fall
	// back to it with a warning.
	ClientName string

	// APIKey overrides the Innertube API key. When empty the key is
	// resolved from the watch page with a baked-in fallback.
	APIKey string

	// DisableDynamicAPIKeyResolution skips the watch-page key scrape
	// and always uses the baked-in (or configured) key.
	DisableDynamicAPIKeyResolution bool

	// StrictLanguage makes extraction fail when the requested language
	// has no track, instead of falling back to the first available one.
	StrictLanguage bool

	// Logger receives warnings and progress messages. Default is silent.
	Logger Logger
}

const (
	defaultTimeout       = 30 * time.Second
	defaultMaxRetries    = 3
	defaultBackoffFactor = 750 * time.Millisecond
	defaultMinDelay      = 2 * time.Second
)

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.BackoffFactor <= 0 {
		c.BackoffFactor = defaultBackoffFactor
	}
	if c.MinDelay == 0 {
		c.MinDelay = defaultMinDelay
	}
	if c.MinDelay < 0 {
		c.MinDelay = 0
	}
	if c.Logger == nil {
		c.Logger = nopLogger{}
	}
	return c
}
