package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// TestParseFormat tests log format names.
func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{" JSON ", FormatJSON, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

// TestNewLogger tests both output encodings.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("json record is valid and sanitized", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false, FormatJSON)
		logger.Warn("page fetch failed", "url", "https://en.wikipedia.org/wiki/Go", "cookie", "enwikiSession=abc")

		var record map[string]any
		if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
			t.Fatalf("expected one JSON object, got %q: %v", buf.String(), err)
		}
		if record["url"] != "https://en.wikipedia.org/wiki/Go" {
			t.Errorf("unexpected url %v", record["url"])
		}
		if record["cookie"] != "enwikiSession="+Mask {
			t.Errorf("expected cookie value to be masked, got %v", record["cookie"])
		}
	})

	t.Run("verbose json masks configured headers", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true, FormatJSON)
		logger.Debug("http client ready", Headers("headers", map[string]string{
			"Cookie":          "enwikiSession=abc123",
			"Accept-Language": "de",
		}))

		out := buf.String()
		if strings.Contains(out, "abc123") {
			t.Errorf("expected session cookie to be masked, got %q", out)
		}
		if !strings.Contains(out, `"Accept-Language":"de"`) {
			t.Errorf("expected harmless header to be kept, got %q", out)
		}
	})

	t.Run("text output contains prefix and message", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true, FormatText)
		logger.Debug("recorded page", "title", "Go")

		out := buf.String()
		if !strings.Contains(out, "wikiwalk") {
			t.Errorf("expected prefix in output: %q", out)
		}
		if !strings.Contains(out, "recorded page") {
			t.Errorf("expected message in output: %q", out)
		}
	})
}
