package present

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"study/internal/api"
	"study/internal/explain"
	"study/internal/history"
	"study/internal/markdown"
	"study/internal/mcq"
)

var fixedNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newPrinter(format Format) (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, Options{Format: format, Color: "never", Now: func() time.Time { return fixedNow }}), &buf
}

func requireContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "JSON": FormatJSON, "yml": FormatYAML, " yaml ": FormatYAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for xml")
	}
}

func TestShouldColorize(t *testing.T) {
	var buf bytes.Buffer
	if !ShouldColorize(&buf, "always") || ShouldColorize(&buf, "never") || ShouldColorize(&buf, "auto") {
		t.Fatal("unexpected colour resolution for a buffer")
	}
}

func TestSummaryText(t *testing.T) {
	p, buf := newPrinter(FormatText)
	raw := "# Cell biology\n\nCells are **small**.\n- nucleus\n- membrane\n## Details\n### Deeper"
	if err := p.Summary(api.Summary{Raw: raw, Blocks: markdown.Render(raw)}); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	out := buf.String()
	requireContains(t, out, "CELL BIOLOGY\n============", "Cells are small.", "  • nucleus", "Details\n-------", "▸ Deeper")
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("colour disabled but escape codes found: %q", out)
	}
}

func TestSummaryColor(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, Options{Color: "always"})
	if err := p.Summary(api.Summary{Blocks: markdown.Render("# Title\na **b**")}); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected escape codes, got %q", buf.String())
	}
}

func TestQuizText(t *testing.T) {
	p, buf := newPrinter(FormatText)
	quiz := api.Quiz{Records: mcq.Parse("1. What is 2+2?\nA) 3\nB) 4\nCorrect answer: B\n2. Open?\nA) yes")}
	if err := p.Quiz(quiz); err != nil {
		t.Fatalf("Quiz: %v", err)
	}
	requireContains(t, buf.String(), "1. What is 2+2?\n   A) 3\n   B) 4\n   Correct answer: B\n\n2. Open?\n   A) yes\n")
}

func TestExplanationText(t *testing.T) {
	p, buf := newPrinter(FormatText)
	sections := explain.Render([]any{
		map[string]any{"title": "Osmosis", "paragraph": "Water moves.", "bullets": []any{"passive"}, "terms": []any{"solute", "solvent"}, "faqs": []any{map[string]any{"q": "Energy?", "a": "None"}}},
	})
	if err := p.Explanation(api.Explanation{Topic: "osmosis", Sections: sections}); err != nil {
		t.Fatalf("Explanation: %v", err)
	}
	requireContains(t, buf.String(), "== Osmosis ==", "Water moves.", "Bullets:\n  • passive", "Key Terms: solute, solvent", "  Q: Energy?\n  A: None")
}

func TestNotesAndListText(t *testing.T) {
	p, buf := newPrinter(FormatText)
	if err := p.Notes(api.Notes{Items: []string{"**Main** idea", "second"}}); err != nil {
		t.Fatalf("Notes: %v", err)
	}
	requireContains(t, buf.String(), "Note 1\n  Main idea", "Note 2\n  second")

	buf.Reset()
	if err := p.NoteList(nil); err != nil {
		t.Fatalf("NoteList: %v", err)
	}
	requireContains(t, buf.String(), "No notes found")

	buf.Reset()
	long := strings.Repeat("y", 250)
	if err := p.NoteList([]api.NoteEntry{{PDFName: "a.pdf", Summary: long}}); err != nil {
		t.Fatalf("NoteList: %v", err)
	}
	requireContains(t, buf.String(), "Note", "a.pdf", "╭")
}

func TestJSONAndYAMLShareFieldNames(t *testing.T) {
	quiz := api.Quiz{Records: []mcq.Record{{Question: "Q", Options: []string{"a"}, CorrectAnswerLine: "Correct answer: A", HasAnswer: true}}}

	p, buf := newPrinter(FormatJSON)
	if err := p.Quiz(quiz); err != nil {
		t.Fatalf("Quiz json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	records := decoded["records"].([]any)
	if records[0].(map[string]any)["correct_answer_line"] != "Correct answer: A" {
		t.Fatalf("unexpected JSON %s", buf.String())
	}

	p, buf = newPrinter(FormatYAML)
	if err := p.Quiz(quiz); err != nil {
		t.Fatalf("Quiz yaml: %v", err)
	}
	requireContains(t, buf.String(), "records:", "correct_answer_line:", "Correct answer: A", "has_answer: true")
}

func TestSummaryJSONUsesKindNames(t *testing.T) {
	p, buf := newPrinter(FormatJSON)
	if err := p.Summary(api.Summary{Raw: "# T", Blocks: markdown.Render("# T")}); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	requireContains(t, buf.String(), `"kind": "heading"`)
}

func TestMessage(t *testing.T) {
	p, buf := newPrinter(FormatText)
	if err := p.Message("Login successful ✓"); err != nil {
		t.Fatalf("Message: %v", err)
	}
	if buf.String() != "Login successful ✓\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
	p, buf = newPrinter(FormatJSON)
	_ = p.Message("done")
	requireContains(t, buf.String(), `"message": "done"`)
}

func TestHistoryViews(t *testing.T) {
	store, err := history.OpenPath(filepath.Join(t.TempDir(), "history.db"), 0)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	defer store.Close()
	ctx := context.Background()
	raw := "# Cells\n- one"
	entry, err := store.Add(ctx, history.KindSummary, "cells.pdf", "cells.pdf", api.Summary{Raw: raw, Blocks: markdown.Render(raw)})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	entry.CreatedAt = fixedNow.Add(-3 * time.Minute)

	p, buf := newPrinter(FormatText)
	if err := p.HistoryList([]history.Entry{entry}); err != nil {
		t.Fatalf("HistoryList: %v", err)
	}
	requireContains(t, buf.String(), entry.ShortID(), "Summary", "cells.pdf", "3 minutes ago")

	buf.Reset()
	if err := p.HistoryEntry(entry); err != nil {
		t.Fatalf("HistoryEntry: %v", err)
	}
	requireContains(t, buf.String(), "Summary · cells.pdf · 3 minutes ago", "CELLS", "  • one")

	buf.Reset()
	if err := p.HistoryList(nil); err != nil {
		t.Fatalf("HistoryList: %v", err)
	}
	requireContains(t, buf.String(), "No history entries")
}

func TestSessionAndDashboard(t *testing.T) {
	p, buf := newPrinter(FormatText)
	if err := p.Session(SessionStatus{Path: "/tmp/session.json"}); err != nil {
		t.Fatalf("Session: %v", err)
	}
	requireContains(t, buf.String(), "Not logged in", "/tmp/session.json")

	buf.Reset()
	exp := fixedNow.Add(-time.Hour)
	if err := p.Session(SessionStatus{LoggedIn: true, UserName: "Ada", ExpiresAt: &exp, Expired: true, Path: "/s"}); err != nil {
		t.Fatalf("Session: %v", err)
	}
	requireContains(t, buf.String(), "User:", "Ada", "expired 1 hour ago")

	buf.Reset()
	err := p.Dashboard(Dashboard{
		Profile: api.Profile{Name: "Ada", Email: "ada@example.com"},
		Notes:   []api.NoteEntry{{Title: "x"}, {Title: "y"}},
		History: map[history.Kind]int{history.KindQuiz: 2, history.KindNotes: 1},
	})
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	requireContains(t, buf.String(), "== Profile ==", "ada@example.com", "Mobile:", "-", "2 saved on the server", "Notes", "Quiz")
}
