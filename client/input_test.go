package client

import (
	"errors"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"raw id", "jNQXAC9IVRw", "jNQXAC9IVRw"},
		{"watch url", "https://www.youtube.com/watch?v=jNQXAC9IVRw", "jNQXAC9IVRw"},
		{"watch url with params", "https://www.youtube.com/watch?v=jNQXAC9IVRw&t=10s", "jNQXAC9IVRw"},
		{"short url", "https://youtu.be/jNQXAC9IVRw", "jNQXAC9IVRw"},
		{"shorts url", "https://www.youtube.com/shorts/jNQXAC9IVRw", "jNQXAC9IVRw"},
		{"embed url", "https://www.youtube.com/embed/jNQXAC9IVRw", "jNQXAC9IVRw"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractVideoID(tc.input)
			if err != nil {
				t.Fatalf("ExtractVideoID(%q) error = %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("ExtractVideoID(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestExtractVideoIDRejectsInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "short", "https://example.com/page", "twelve-chars!"} {
		if _, err := ExtractVideoID(input); !errors.Is(err, ErrInvalidVideoID) {
			t.Fatalf("ExtractVideoID(%q) error = %v, want ErrInvalidVideoID", input, err)
		}
	}
}
