package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BodyKind tags the variant held by a ParsedBody.
type BodyKind int

const (
	BodyEmpty BodyKind = iota
	BodyJSON
	BodyText
)

func (k BodyKind) String() string {
	switch k {
	case BodyJSON:
		return "json"
	case BodyText:
		return "text"
	default:
		return "empty"
	}
}

// ParsedBody is the normalized form of a response body: a decoded JSON value,
// raw text, or nothing.
type ParsedBody struct {
	Kind BodyKind
	JSON any
	Text string
}

// JSONValue wraps a decoded JSON value.
func JSONValue(v any) ParsedBody {
	return ParsedBody{Kind: BodyJSON, JSON: v}
}

// TextValue wraps a raw text body.
func TextValue(s string) ParsedBody {
	return ParsedBody{Kind: BodyText, Text: s}
}

// EmptyBody reports a body that could not be read.
func EmptyBody() ParsedBody {
	return ParsedBody{Kind: BodyEmpty}
}

// IsJSON reports whether the body holds a decoded JSON value.
func (p ParsedBody) IsJSON() bool { return p.Kind == BodyJSON }

// IsText reports whether the body holds raw text.
func (p ParsedBody) IsText() bool { return p.Kind == BodyText }

// IsEmpty reports whether the body could not be read.
func (p ParsedBody) IsEmpty() bool { return p.Kind == BodyEmpty }

// Object returns the JSON value as an object, if it is one.
func (p ParsedBody) Object() (map[string]any, bool) {
	if p.Kind != BodyJSON {
		return nil, false
	}
	obj, ok := p.JSON.(map[string]any)
	return obj, ok
}

// Array returns the JSON value as an array, if it is one.
func (p ParsedBody) Array() ([]any, bool) {
	if p.Kind != BodyJSON {
		return nil, false
	}
	arr, ok := p.JSON.([]any)
	return arr, ok
}

// String renders the body for display. JSON values are serialized compactly.
func (p ParsedBody) String() string {
	switch p.Kind {
	case BodyJSON:
		return compactJSON(p.JSON)
	case BodyText:
		return p.Text
	default:
		return ""
	}
}

func compactJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
