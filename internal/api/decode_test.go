package api

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"study/internal/transport"
)

type stubSender struct {
	body transport.ParsedBody
	err  error
	last transport.Request
}

func (s *stubSender) Send(_ context.Context, req transport.Request) (transport.ParsedBody, error) {
	s.last = req
	return s.body, s.err
}

func jsonOf(t *testing.T, raw string) transport.ParsedBody {
	t.Helper()
	parsed := transport.Normalize("application/json", strings.NewReader(raw))
	if !parsed.IsJSON() {
		t.Fatalf("fixture %s is not JSON", raw)
	}
	return parsed
}

func TestMakeMCQShapes(t *testing.T) {
	transcript := "1. What is 2+2?\nA) 3\nB) 4\nCorrect answer: B"
	tests := []struct {
		name     string
		body     transport.ParsedBody
		question string
		options  int
		answer   string
	}{
		{"array of items", jsonOf(t, `[{"question":"Q1","options":["a","b","c"],"answer":"B"}]`), "Q1", 3, "Correct answer: B"},
		{"mcqs transcript", jsonOf(t, `{"mcqs":`+quote(transcript)+`}`), "1. What is 2+2?", 2, "Correct answer: B"},
		{"mcqs items", jsonOf(t, `{"mcqs":[{"question":"Q2","options":{"B":"two","A":"one"}}]}`), "Q2", 2, ""},
		{"bare transcript", transport.TextValue(transcript), "1. What is 2+2?", 2, "Correct answer: B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(&stubSender{body: tt.body}, nil)
			quiz, err := client.MakeMCQ(context.Background(), "tok", "text", 0)
			if err != nil {
				t.Fatalf("MakeMCQ returned error: %v", err)
			}
			if len(quiz.Records) != 1 {
				t.Fatalf("expected one record, got %#v", quiz.Records)
			}
			rec := quiz.Records[0]
			if rec.Question != tt.question || len(rec.Options) != tt.options || rec.CorrectAnswerLine != tt.answer {
				t.Fatalf("unexpected record %#v", rec)
			}
		})
	}
}

func TestMCQOptionObjectOrder(t *testing.T) {
	items := quizItems([]any{map[string]any{"question": "Q", "options": map[string]any{"B": "two", "A": "one"}}, "skip"})
	if len(items) != 1 || items[0].Options[0] != "one" || items[0].Options[1] != "two" {
		t.Fatalf("unexpected items %#v", items)
	}
}

func TestMakeMCQCountOmittedWhenZero(t *testing.T) {
	stub := &stubSender{body: transport.TextValue("")}
	client := NewClient(stub, nil)
	if _, err := client.MakeMCQ(context.Background(), "tok", "text", 0); err != nil {
		t.Fatalf("MakeMCQ returned error: %v", err)
	}
	payload := stub.last.Body.(transport.JSONBody).Value.(map[string]any)
	if _, ok := payload["count"]; ok {
		t.Fatalf("count should be omitted, got %v", payload)
	}
	if _, err := client.MakeMCQ(context.Background(), "tok", "text", 5); err != nil {
		t.Fatalf("MakeMCQ returned error: %v", err)
	}
	payload = stub.last.Body.(transport.JSONBody).Value.(map[string]any)
	if payload["count"] != 5 {
		t.Fatalf("expected count 5, got %v", payload["count"])
	}
}

func TestUnexpectedShapes(t *testing.T) {
	ctx := context.Background()
	var shapeErr *ShapeError

	client := NewClient(&stubSender{body: jsonOf(t, `{"result":1}`)}, nil)
	if _, err := client.MakeMCQ(ctx, "tok", "text", 0); !errors.As(err, &shapeErr) || shapeErr.Endpoint != PathMakeMCQ {
		t.Fatalf("expected shape error, got %v", err)
	}
	if _, err := client.MakeNotes(ctx, "tok", "text"); !errors.As(err, &shapeErr) {
		t.Fatalf("expected shape error, got %v", err)
	}
	if _, err := client.Summarize(ctx, "tok", "f.pdf", nil); !errors.As(err, &shapeErr) {
		t.Fatalf("expected shape error, got %v", err)
	}
	if !strings.Contains(shapeErr.Error(), `{"result":1}`) {
		t.Fatalf("expected snippet in message, got %q", shapeErr.Error())
	}

	client = NewClient(&stubSender{body: transport.TextValue("not a profile")}, nil)
	if _, err := client.Me(ctx, "tok"); !errors.As(err, &shapeErr) {
		t.Fatalf("expected shape error, got %v", err)
	}
}

func TestEmptyBodyIsMalformed(t *testing.T) {
	client := NewClient(&stubSender{body: transport.EmptyBody()}, nil)
	_, err := client.Ask(context.Background(), "tok", "why", "")
	info, ok := transport.AsErrorInfo(err)
	if !ok || info.Kind != transport.KindMalformedBody {
		t.Fatalf("expected malformed body error, got %v", err)
	}

	if _, err := client.DeleteMe(context.Background(), "tok"); err != nil {
		t.Fatalf("delete should tolerate an empty body, got %v", err)
	}
}

func TestNotesShapes(t *testing.T) {
	for _, body := range []transport.ParsedBody{
		jsonOf(t, `{"notes":"one note"}`),
		transport.TextValue("one note"),
	} {
		notes, err := decodeNotes(body)
		if err != nil || len(notes.Items) != 1 || notes.Items[0] != "one note" {
			t.Fatalf("unexpected notes %#v, %v", notes, err)
		}
	}
	notes, err := decodeNotes(jsonOf(t, `{"notes":["a","  ",2]}`))
	if err != nil || len(notes.Items) != 2 || notes.Items[1] != "2" {
		t.Fatalf("unexpected notes %#v, %v", notes, err)
	}
}

func TestExplainFallbacks(t *testing.T) {
	client := NewClient(&stubSender{body: jsonOf(t, `{"explanation":"just text"}`)}, nil)
	exp, err := client.Explain(context.Background(), "tok", "topic")
	if err != nil {
		t.Fatalf("Explain returned error: %v", err)
	}
	if len(exp.Sections) != 1 || exp.Sections[0].Title != "Explanation" || exp.Sections[0].Paragraph != "just text" {
		t.Fatalf("unexpected sections %#v", exp.Sections)
	}

	client = NewClient(&stubSender{body: jsonOf(t, `[{"title":"Direct"}]`)}, nil)
	exp, err = client.Explain(context.Background(), "tok", "topic")
	if err != nil || len(exp.Sections) != 1 || exp.Sections[0].Title != "Direct" {
		t.Fatalf("unexpected sections %#v, %v", exp.Sections, err)
	}
}

func TestListNotesNonArray(t *testing.T) {
	client := NewClient(&stubSender{body: jsonOf(t, `{"notes":[]}`)}, nil)
	entries, err := client.ListNotes(context.Background(), "tok")
	if err != nil || entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty list, got %#v, %v", entries, err)
	}
}

func TestNoteEntryPreview(t *testing.T) {
	entry := NoteEntry{Summary: strings.Repeat("x", 250)}
	if got := entry.Preview(200); len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected preview %q", got)
	}
	if entry.DisplayTitle() != "Note" {
		t.Fatalf("expected default title, got %q", entry.DisplayTitle())
	}
	entry = NoteEntry{Content: "line one\nline two", Summary: "ignored"}
	if got := entry.Preview(200); got != "line one line two" {
		t.Fatalf("content should win over summary, got %q", got)
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, "\n", `\n`) + `"`
}

func TestSendLogsDecodedResponse(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := NewClient(&stubSender{body: transport.TextValue("plain answer")}, logger)

	if _, err := client.Ask(context.Background(), "", "why?", ""); err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"endpoint":"/qna"`, `"authenticated":false`, `"text_bytes":12`, `"component":"api"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log to contain %s, got %s", want, out)
		}
	}
}
