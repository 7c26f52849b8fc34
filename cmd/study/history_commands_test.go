package main

import (
	"context"
	"testing"

	"study/internal/history"
	"study/internal/testsupport"
)

func TestHistoryCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	env.login(t)
	for _, args := range [][]string{
		{"ask", "what", "is", "osmosis"},
		{"mcq", "--text", "glucose metabolism"},
	} {
		if _, _, err := runCLI(t, env, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	out, _, err := runCLI(t, env, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "Answer")
	requireContains(t, out, "Quiz")

	out, _, err = runCLI(t, env, "history", "list", "--kind", "quiz")
	if err != nil {
		t.Fatalf("history list --kind: %v", err)
	}
	requireContains(t, out, "glucose metabolism")

	if _, _, err := runCLI(t, env, "history", "list", "--kind", "poem"); err == nil {
		t.Fatal("expected unknown kind error")
	}

	store := testsupport.MustOpenHistory(t, env.cfg)
	entries, err := store.List(context.Background(), history.ListOptions{Kind: history.KindAnswer})
	if err != nil || len(entries) != 1 {
		t.Fatalf("list answers: %v %v", entries, err)
	}
	id := entries[0].ShortID()

	out, _, err = runCLI(t, env, "history", "show", id)
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, "Answer · what is osmosis")
	requireContains(t, out, "Answer to: what is osmosis")

	out, _, err = runCLI(t, env, "history", "search", "glucose")
	if err != nil {
		t.Fatalf("history search: %v", err)
	}
	requireContains(t, out, "glucose metabolism")

	out, _, err = runCLI(t, env, "history", "rm", id)
	if err != nil {
		t.Fatalf("history rm: %v", err)
	}
	requireContains(t, out, "Removed "+id)

	_, _, err = runCLI(t, env, "history", "show", id)
	if err == nil {
		t.Fatal("expected removed entry to be missing")
	}
	requireContains(t, err.Error(), "no history entry matches")

	if _, _, err := runCLI(t, env, "history", "clear"); err == nil {
		t.Fatal("expected clear without --yes to fail")
	}
	out, _, err = runCLI(t, env, "history", "clear", "--yes")
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	requireContains(t, out, "Removed 1 entries")
}
