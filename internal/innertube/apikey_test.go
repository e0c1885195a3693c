package innertube

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

type fetcherFunc func(ctx context.Context, rawURL string, header http.Header) ([]byte, int, error)

func (f fetcherFunc) GetBytes(ctx context.Context, rawURL string, header http.Header) ([]byte, int, error) {
	return f(ctx, rawURL, header)
}

func TestAPIKeyResolver_ResolvesFromWatchPage(t *testing.T) {
	var calls int
	resolver := NewAPIKeyResolver(fetcherFunc(func(ctx context.Context, rawURL string, header http.Header) ([]byte, int, error) {
		calls++
		if !strings.Contains(rawURL, "/watch?v=jNQXAC9IVRw") {
			t.Fatalf("unexpected watch url: %s", rawURL)
		}
		if header.Get("User-Agent") != WebClient.UserAgent {
			t.Fatalf("watch fetch user agent = %q", header.Get("User-Agent"))
		}
		page := `<script>ytcfg.set({"INNERTUBE_API_KEY":"dynamic_key_123"});</script>`
		return []byte(page), http.StatusOK, nil
	}))

	profile := WebClient
	profile.APIKey = "fallback_key"

	got, err := resolver.Resolve(context.Background(), profile, "jNQXAC9IVRw")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "dynamic_key_123" {
		t.Fatalf("Resolve() = %q, want %q", got, "dynamic_key_123")
	}

	got2, err := resolver.Resolve(context.Background(), profile, "jNQXAC9IVRw")
	if err != nil {
		t.Fatalf("Resolve() second error = %v", err)
	}
	if got2 != "dynamic_key_123" {
		t.Fatalf("Resolve() second = %q, want %q", got2, "dynamic_key_123")
	}
	if calls != 1 {
		t.Fatalf("watch page should be cached; calls=%d want=1", calls)
	}
}

func TestAPIKeyResolver_FallsBackWhenMissing(t *testing.T) {
	resolver := NewAPIKeyResolver(fetcherFunc(func(ctx context.Context, rawURL string, header http.Header) ([]byte, int, error) {
		return []byte(`<html>no key here</html>`), http.StatusOK, nil
	}))

	profile := WebClient
	profile.APIKey = "fallback_key"

	got, err := resolver.Resolve(context.Background(), profile, "jNQXAC9IVRw")
	if err == nil {
		t.Fatalf("expected extraction error, got nil")
	}
	if got != "fallback_key" {
		t.Fatalf("fallback key = %q, want %q", got, "fallback_key")
	}
}

func TestAPIKeyResolver_ChallengePageIsReportedAndNotCached(t *testing.T) {
	var calls int
	resolver := NewAPIKeyResolver(fetcherFunc(func(ctx context.Context, rawURL string, header http.Header) ([]byte, int, error) {
		calls++
		if calls == 1 {
			return []byte(`<html>Our systems have detected unusual traffic. reCAPTCHA required.</html>`), http.StatusOK, nil
		}
		return []byte(`{"INNERTUBE_API_KEY":"recovered_key"}`), http.StatusOK, nil
	}))

	profile := WebClient
	profile.APIKey = "fallback_key"

	got, err := resolver.Resolve(context.Background(), profile, "jNQXAC9IVRw")
	if !errors.Is(err, ErrChallengePage) {
		t.Fatalf("Resolve() error = %v, want ErrChallengePage", err)
	}
	if got != "fallback_key" {
		t.Fatalf("Resolve() = %q, want fallback during challenge", got)
	}

	got2, err := resolver.Resolve(context.Background(), profile, "jNQXAC9IVRw")
	if err != nil {
		t.Fatalf("Resolve() after challenge error = %v", err)
	}
	if got2 != "recovered_key" {
		t.Fatalf("challenge must not poison the cache; got %q", got2)
	}
}

func TestAPIKeyResolver_NilFetcherReturnsStaticKey(t *testing.T) {
	resolver := NewAPIKeyResolver(nil)
	got, err := resolver.Resolve(context.Background(), AndroidClient, "jNQXAC9IVRw")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != AndroidClient.APIKey {
		t.Fatalf("Resolve() = %q, want baked-in key", got)
	}
}
