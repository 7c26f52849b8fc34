// Package explain maps the backend's explanation payload into render-ready
// sections.
package explain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	defaultTitle  = "Section"
	fallbackTitle = "Explanation"
)

// FAQ is one question/answer pair.
type FAQ struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Section is one titled block of an explanation. List fields are never nil.
type Section struct {
	Title     string   `json:"title"`
	Paragraph string   `json:"paragraph,omitempty"`
	Bullets   []string `json:"bullets"`
	Examples  []string `json:"examples"`
	Terms     []string `json:"terms"`
	FAQs      []FAQ    `json:"faqs"`
}

func newSection(title string) Section {
	return Section{
		Title:    title,
		Bullets:  []string{},
		Examples: []string{},
		Terms:    []string{},
		FAQs:     []FAQ{},
	}
}

// Render converts a decoded JSON value into sections. A non-array value yields
// one "Explanation" section holding the value's text; each array element is
// mapped on its own and malformed fields degrade to empty. Render never fails.
func Render(value any) []Section {
	items, ok := value.([]any)
	if !ok {
		sec := newSection(fallbackTitle)
		sec.Paragraph = stringify(value)
		return []Section{sec}
	}
	sections := make([]Section, 0, len(items))
	for _, item := range items {
		sections = append(sections, renderOne(item))
	}
	return sections
}

func renderOne(item any) Section {
	obj, ok := item.(map[string]any)
	if !ok {
		sec := newSection(defaultTitle)
		sec.Paragraph = stringify(item)
		return sec
	}
	title := strings.TrimSpace(scalar(obj["title"]))
	if title == "" {
		title = defaultTitle
	}
	sec := newSection(title)
	sec.Paragraph = scalar(obj["paragraph"])
	sec.Bullets = list(obj["bullets"])
	sec.Examples = list(obj["examples"])
	sec.Terms = list(obj["terms"])
	sec.FAQs = faqs(obj["faqs"])
	return sec
}

// list accepts an array (entries stringified, blanks dropped) or a single
// string.
func list(v any) []string {
	switch value := v.(type) {
	case string:
		if strings.TrimSpace(value) == "" {
			return []string{}
		}
		return []string{value}
	case []any:
		out := make([]string, 0, len(value))
		for _, entry := range value {
			if s := stringify(entry); strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

func faqs(v any) []FAQ {
	items, ok := v.([]any)
	if !ok {
		return []FAQ{}
	}
	out := make([]FAQ, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		faq := FAQ{Q: firstScalar(obj, "q", "question"), A: firstScalar(obj, "a", "answer")}
		if faq.Q == "" && faq.A == "" {
			continue
		}
		out = append(out, faq)
	}
	return out
}

func firstScalar(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := scalar(obj[key]); s != "" {
			return s
		}
	}
	return ""
}

// scalar renders strings, numbers and booleans; anything else is empty.
func scalar(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64, bool, json.Number:
		return fmt.Sprint(value)
	default:
		return ""
	}
}

// stringify renders any decoded value as text: strings verbatim, nil empty,
// everything else as compact JSON.
func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimRight(buf.String(), "\n")
}
