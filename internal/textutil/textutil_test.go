package textutil

import (
	"math"
	"testing"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"colour", "\x1b[1;31mred\x1b[0m text", "red text"},
		{"cursor", "a\x1b[2Kb", "ab"},
		{"osc title", "\x1b]0;title\x07body", "body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.in); got != tt.want {
				t.Fatalf("StripANSI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	if got := Preview("short", 200); got != "short" {
		t.Fatalf("unexpected preview %q", got)
	}
	if got := Preview("abcdef", 3); got != "abc..." {
		t.Fatalf("unexpected preview %q", got)
	}
	if got := Preview("héllo", 2); got != "hé..." {
		t.Fatalf("preview should count runes, got %q", got)
	}
	if got := Preview("abc", 0); got != "abc" {
		t.Fatalf("zero limit should not truncate, got %q", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cell Biology: Part 1/2", "Cell Biology- Part 1-2"},
		{"  what?  ", "what"},
		{"...", "fallback"},
		{"", "fallback"},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in, "fallback"); got != tt.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := CosineSimilarity(nil, NewFingerprint("photosynthesis")); got != 0 {
		t.Fatalf("nil fingerprint should score 0, got %v", got)
	}
	a := NewFingerprint("Photosynthesis converts light energy")
	if got := CosineSimilarity(a, NewFingerprint("photosynthesis converts LIGHT energy")); math.Abs(got-1) > 1e-9 {
		t.Fatalf("identical token sets should score 1, got %v", got)
	}
	if got := CosineSimilarity(a, NewFingerprint("mitochondria powerhouse")); got != 0 {
		t.Fatalf("disjoint texts should score 0, got %v", got)
	}
	partial := CosineSimilarity(a, NewFingerprint("light reactions"))
	if partial <= 0 || partial >= 1 {
		t.Fatalf("partial overlap should be between 0 and 1, got %v", partial)
	}
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	got := Tokenize("An ox is in the DNA-helix")
	want := []string{"the", "dna", "helix"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize = %v, want %v", got, want)
		}
	}
}
