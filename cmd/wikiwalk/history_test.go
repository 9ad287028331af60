package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/w-vac/wikipedia-webscraper1.0/internal/database"
	"github.com/w-vac/wikipedia-webscraper1.0/internal/model"
)

// seedHistory stores two walks in a new database under a temp directory.
func seedHistory(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	walks := []*model.Walk{
		{
			ID:         "aaaa1111-0000-0000-0000-000000000000",
			StartURL:   "https://en.wikipedia.org/wiki/Go",
			StartedAt:  started,
			FinishedAt: started.Add(5 * time.Second),
			Reason:     model.ReasonNoLinks,
			Pages: []model.VisitedPage{
				{Title: "Go", URL: "https://en.wikipedia.org/wiki/Go"},
				{Title: "Board game", URL: "https://en.wikipedia.org/wiki/Board_game"},
			},
		},
		{
			ID:         "bbbb2222-0000-0000-0000-000000000000",
			StartURL:   "https://en.wikipedia.org/wiki/Tea",
			StartedAt:  started.Add(time.Hour),
			FinishedAt: started.Add(time.Hour + time.Second),
			Reason:     model.ReasonInterrupted,
			Pages: []model.VisitedPage{
				{Title: "Tea", URL: "https://en.wikipedia.org/wiki/Tea"},
			},
		},
	}
	for _, w := range walks {
		if err := db.SaveWalk(context.Background(), w); err != nil {
			t.Fatalf("failed to save walk: %v", err)
		}
	}
	return dir
}

// runHistory executes the history command with args and returns its output.
func runHistory(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewHistoryCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists walks newest first", func(t *testing.T) {
		t.Parallel()

		dir := seedHistory(t)
		out, err := runHistory(t, "--db-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tea := strings.Index(out, "bbbb2222")
		golang := strings.Index(out, "aaaa1111")
		if tea < 0 || golang < 0 || tea > golang {
			t.Errorf("expected newest walk first, got:\n%s", out)
		}
		if !strings.Contains(out, "no_links") || !strings.Contains(out, "interrupted") {
			t.Errorf("expected reasons in listing, got:\n%s", out)
		}
	})

	t.Run("limit restricts the listing", func(t *testing.T) {
		t.Parallel()

		dir := seedHistory(t)
		out, err := runHistory(t, "--db-dir", dir, "--limit", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(out, "aaaa1111") {
			t.Errorf("expected only the newest walk, got:\n%s", out)
		}
	})

	t.Run("shows one walk by prefix", func(t *testing.T) {
		t.Parallel()

		dir := seedHistory(t)
		out, err := runHistory(t, "--db-dir", dir, "aaaa")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Board game") || !strings.Contains(out, "https://en.wikipedia.org/wiki/Board_game") {
			t.Errorf("expected pages of the walk, got:\n%s", out)
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		dir := seedHistory(t)
		out, err := runHistory(t, "--db-dir", dir, "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var walks []model.WalkSummary
		if err := json.Unmarshal([]byte(out), &walks); err != nil {
			t.Fatalf("expected JSON output, got %v:\n%s", err, out)
		}
		if len(walks) != 2 || walks[0].Reason != model.ReasonInterrupted || walks[1].PageCount != 2 {
			t.Errorf("unexpected walks: %+v", walks)
		}
	})

	t.Run("markdown output", func(t *testing.T) {
		t.Parallel()

		dir := seedHistory(t)
		out, err := runHistory(t, "--db-dir", dir, "--markdown")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(out, "# Walk History") {
			t.Errorf("expected Markdown heading, got:\n%s", out)
		}
	})

	t.Run("json and markdown conflict", func(t *testing.T) {
		t.Parallel()

		_, err := runHistory(t, "--db-dir", t.TempDir(), "--json", "--markdown")
		if !errors.Is(err, errConflictingFormats) {
			t.Errorf("expected errConflictingFormats, got %v", err)
		}
	})

	t.Run("unknown walk", func(t *testing.T) {
		t.Parallel()

		dir := seedHistory(t)
		_, err := runHistory(t, "--db-dir", dir, "cccc")
		if !errors.Is(err, database.ErrWalkNotFound) {
			t.Errorf("expected ErrWalkNotFound, got %v", err)
		}
	})

	t.Run("delete removes a walk", func(t *testing.T) {
		t.Parallel()

		dir := seedHistory(t)
		out, err := runHistory(t, "--db-dir", dir, "--delete", "bbbb")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Deleted walk bbbb") {
			t.Errorf("unexpected output: %q", out)
		}

		out, err = runHistory(t, "--db-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(out, "bbbb2222") {
			t.Errorf("expected deleted walk to be gone, got:\n%s", out)
		}
	})

	t.Run("delete requires an ID", func(t *testing.T) {
		t.Parallel()

		if _, err := runHistory(t, "--db-dir", t.TempDir(), "--delete"); err == nil {
			t.Error("expected error without walk ID")
		}
	})

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()

		out, err := runHistory(t, "--db-dir", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "No walks recorded yet.") {
			t.Errorf("unexpected output: %q", out)
		}
	})
}
