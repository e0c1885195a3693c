package client

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

func defaultHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	if strings.TrimSpace(proxyURL) == "" {
		return &http.Client{Timeout: timeout}
	}
	parsed, err := url.Parse(proxyURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return &http.Client{Timeout: timeout}
	}
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return &http.Client{Timeout: timeout}
	}
	transport := baseTransport.Clone()
	transport.Proxy = http.ProxyURL(parsed)
	return &http.Client{Transport: transport, Timeout: timeout}
}
