package history

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "history.db"), maxEntries)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return store
}

func TestAddListGet(t *testing.T) {
	store := openTestStore(t, 0)
	ctx := context.Background()

	first, err := store.Add(ctx, KindSummary, " lecture.pdf ", "lecture.pdf", map[string]string{"raw": "# Cells"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first.Title != "lecture.pdf" || len(first.ID) != 36 {
		t.Fatalf("unexpected entry %+v", first)
	}
	second, err := store.Add(ctx, KindQuiz, "Quiz", "cells", []string{"q1"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	entries, err := store.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != second.ID || entries[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", entries)
	}

	filtered, err := store.List(ctx, ListOptions{Kind: KindSummary})
	if err != nil || len(filtered) != 1 || filtered[0].ID != first.ID {
		t.Fatalf("unexpected filtered list %+v, %v", filtered, err)
	}

	got, err := store.Get(ctx, first.ShortID())
	if err != nil {
		t.Fatalf("Get by prefix: %v", err)
	}
	var payload map[string]string
	if err := got.Decode(&payload); err != nil || payload["raw"] != "# Cells" {
		t.Fatalf("unexpected payload %v, %v", payload, err)
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at round trip: %v vs %v", got.CreatedAt, first.CreatedAt)
	}
}

func TestGetErrors(t *testing.T) {
	store := openTestStore(t, 0)
	ctx := context.Background()
	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Get(ctx, "  "); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for blank id, got %v", err)
	}

	for i := 0; i < 20; i++ {
		if _, err := store.Add(ctx, KindAnswer, "a", "", "x"); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	// Whether a one-character prefix is ambiguous depends on the random IDs.
	entries, _ := store.List(ctx, ListOptions{})
	prefix := entries[0].ID[:1]
	matches := 0
	for _, e := range entries {
		if e.ID[:1] == prefix {
			matches++
		}
	}
	_, err := store.Get(ctx, prefix)
	if matches > 1 && !errors.Is(err, ErrAmbiguousID) {
		t.Fatalf("expected ErrAmbiguousID, got %v", err)
	}
	if matches == 1 && err != nil {
		t.Fatalf("expected unique match, got %v", err)
	}
}

func TestPruneOnAdd(t *testing.T) {
	store := openTestStore(t, 3)
	ctx := context.Background()
	var ids []string
	for i := 0; i < 5; i++ {
		entry, err := store.Add(ctx, KindNotes, "n", "", []string{"x"})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		ids = append(ids, entry.ID)
	}
	entries, err := store.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries after pruning, got %d", len(entries))
	}
	if entries[0].ID != ids[4] || entries[2].ID != ids[2] {
		t.Fatalf("expected the newest entries to survive")
	}
}

func TestRemoveClearCount(t *testing.T) {
	store := openTestStore(t, 0)
	ctx := context.Background()
	a, _ := store.Add(ctx, KindNotes, "a", "", "x")
	_, _ = store.Add(ctx, KindNotes, "b", "", "x")
	_, _ = store.Add(ctx, KindQuiz, "c", "", "x")

	counts, err := store.Count(ctx)
	if err != nil || counts[KindNotes] != 2 || counts[KindQuiz] != 1 {
		t.Fatalf("unexpected counts %v, %v", counts, err)
	}
	if err := store.Remove(ctx, a.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.Get(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected removed entry to be gone, got %v", err)
	}
	n, err := store.Clear(ctx)
	if err != nil || n != 2 {
		t.Fatalf("Clear removed %d, %v", n, err)
	}
}

func TestSearch(t *testing.T) {
	store := openTestStore(t, 0)
	ctx := context.Background()
	_, _ = store.Add(ctx, KindExplanation, "photosynthesis", "photosynthesis", map[string]string{"p": "plants convert light"})
	_, _ = store.Add(ctx, KindNotes, "Notes", "mitochondria", []string{"powerhouse of the cell"})

	matches, err := store.Search(ctx, "light photosynthesis", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 1 || matches[0].Entry.Title != "photosynthesis" || matches[0].Score <= 0 {
		t.Fatalf("unexpected matches %+v", matches)
	}
	empty, err := store.Search(ctx, "a", 5)
	if err != nil || len(empty) != 0 {
		t.Fatalf("query without tokens should match nothing, got %+v, %v", empty, err)
	}
}

func TestSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := OpenPath(path, 0)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := OpenPath(path, 0); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("quiz"); err != nil || k != KindQuiz {
		t.Fatalf("ParseKind(quiz) = %v, %v", k, err)
	}
	if _, err := ParseKind("video"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
