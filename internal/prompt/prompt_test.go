package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// TestIsYes tests answer parsing.
func TestIsYes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"Y", true},
		{"  y \t", true},
		{"yes", false},
		{"n", false},
		{"", false},
		{"yy", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			t.Parallel()

			if got := IsYes(tt.answer); got != tt.want {
				t.Errorf("IsYes(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

// TestPrompter tests reading answers.
func TestPrompter(t *testing.T) {
	t.Parallel()

	t.Run("ask trims answer and prints question", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		p := New(strings.NewReader("  https://en.wikipedia.org/wiki/Go  \n"), &out)

		answer, err := p.Ask("URL: ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if answer != "https://en.wikipedia.org/wiki/Go" {
			t.Errorf("unexpected answer %q", answer)
		}
		if out.String() != "URL: " {
			t.Errorf("expected question to be printed, got %q", out.String())
		}
	})

	t.Run("sequential questions", func(t *testing.T) {
		t.Parallel()

		p := New(strings.NewReader("\nY\nn\n"), io.Discard)

		first, err := p.Ask("start? ")
		if err != nil || first != "" {
			t.Errorf("expected empty first answer, got %q, %v", first, err)
		}
		yes, err := p.Confirm("csv? ")
		if err != nil || !yes {
			t.Errorf("expected yes, got %v, %v", yes, err)
		}
		no, err := p.Confirm("xlsx? ")
		if err != nil || no {
			t.Errorf("expected no, got %v, %v", no, err)
		}
	})

	t.Run("last line without newline", func(t *testing.T) {
		t.Parallel()

		p := New(strings.NewReader("y"), io.Discard)
		yes, err := p.Confirm("? ")
		if err != nil || !yes {
			t.Errorf("expected yes, got %v, %v", yes, err)
		}
	})

	t.Run("end of input", func(t *testing.T) {
		t.Parallel()

		p := New(strings.NewReader(""), io.Discard)

		if _, err := p.Ask("? "); !errors.Is(err, io.EOF) {
			t.Errorf("expected io.EOF from Ask, got %v", err)
		}
		yes, err := p.Confirm("? ")
		if err != nil || yes {
			t.Errorf("expected no without error, got %v, %v", yes, err)
		}
	})

	t.Run("cancelled question leaves the line for the next one", func(t *testing.T) {
		t.Parallel()

		r, w := io.Pipe()
		t.Cleanup(func() { _ = r.Close() })
		p := New(r, io.Discard)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := p.AskContext(ctx, "start? "); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}

		go func() { _, _ = io.WriteString(w, "y\n") }()
		yes, err := p.Confirm("csv? ")
		if err != nil || !yes {
			t.Errorf("expected yes, got %v, %v", yes, err)
		}
	})
}
