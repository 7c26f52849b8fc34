package api

import (
	"fmt"
	"sort"
	"strings"

	"study/internal/mcq"
	"study/internal/transport"
)

// str reads key from obj as text. Numbers are formatted; other types are
// treated as absent.
func str(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

func firstStr(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := str(obj, key); s != "" {
			return s
		}
	}
	return ""
}

// textField extracts a string field from an object body. A text body stands
// in for the field.
func textField(endpoint string, body transport.ParsedBody, key string) (string, error) {
	switch body.Kind {
	case transport.BodyText:
		return body.Text, nil
	case transport.BodyJSON:
		if s, ok := body.JSON.(string); ok {
			return s, nil
		}
		if obj, ok := body.Object(); ok {
			if s, ok := obj[key].(string); ok {
				return s, nil
			}
		}
	}
	return "", shapeError(endpoint, body)
}

// requireBody rejects a success response whose body could not be read.
func requireBody(endpoint string, body transport.ParsedBody) error {
	if body.IsEmpty() {
		return emptyBodyError(endpoint)
	}
	return nil
}

func decodeNotes(body transport.ParsedBody) (Notes, error) {
	if body.IsText() {
		return Notes{Items: nonBlank([]any{body.Text})}, nil
	}
	obj, ok := body.Object()
	if !ok {
		return Notes{}, shapeError(PathMakeNotes, body)
	}
	switch v := obj["notes"].(type) {
	case string:
		return Notes{Items: nonBlank([]any{v})}, nil
	case []any:
		return Notes{Items: nonBlank(v)}, nil
	default:
		return Notes{}, shapeError(PathMakeNotes, body)
	}
}

func nonBlank(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		var s string
		switch value := v.(type) {
		case string:
			s = value
		case float64, bool:
			s = fmt.Sprint(value)
		}
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func decodeQuiz(body transport.ParsedBody) (Quiz, error) {
	if body.IsText() {
		return Quiz{Records: mcq.Parse(body.Text)}, nil
	}
	if arr, ok := body.Array(); ok {
		return Quiz{Records: mcq.FromItems(quizItems(arr))}, nil
	}
	if obj, ok := body.Object(); ok {
		switch v := obj["mcqs"].(type) {
		case string:
			return Quiz{Records: mcq.Parse(v)}, nil
		case []any:
			return Quiz{Records: mcq.FromItems(quizItems(v))}, nil
		}
	}
	return Quiz{}, shapeError(PathMakeMCQ, body)
}

// quizItems converts decoded JSON items. Elements that are not objects are
// skipped. Options may be an array or an object keyed by letter.
func quizItems(values []any) []mcq.Item {
	items := make([]mcq.Item, 0, len(values))
	for _, v := range values {
		obj, ok := v.(map[string]any)
		if !ok {
			continue
		}
		item := mcq.Item{
			Question: firstStr(obj, "question", "q"),
			Answer:   firstStr(obj, "answer", "correct_answer", "correct"),
		}
		switch opts := obj["options"].(type) {
		case []any:
			item.Options = nonBlank(opts)
		case map[string]any:
			keys := make([]string, 0, len(opts))
			for key := range opts {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				item.Options = append(item.Options, nonBlank([]any{opts[key]})...)
			}
		}
		items = append(items, item)
	}
	return items
}

func decodeNoteEntries(body transport.ParsedBody) []NoteEntry {
	arr, ok := body.Array()
	if !ok {
		return []NoteEntry{}
	}
	entries := make([]NoteEntry, 0, len(arr))
	for _, v := range arr {
		obj, ok := v.(map[string]any)
		if !ok {
			continue
		}
		entries = append(entries, NoteEntry{
			Title:   str(obj, "title"),
			PDFName: str(obj, "pdf_name"),
			Content: str(obj, "content"),
			Summary: str(obj, "summary"),
		})
	}
	return entries
}
