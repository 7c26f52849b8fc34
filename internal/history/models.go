package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no entry matches an ID.
var ErrNotFound = errors.New("history entry not found")

// ErrAmbiguousID is returned when an ID prefix matches several entries.
var ErrAmbiguousID = errors.New("ambiguous history id")

// Kind identifies the artifact type of an entry.
type Kind string

const (
	KindSummary     Kind = "summary"
	KindExplanation Kind = "explanation"
	KindNotes       Kind = "notes"
	KindQuiz        Kind = "quiz"
	KindAnswer      Kind = "answer"
)

// Kinds lists every artifact kind.
func Kinds() []Kind {
	return []Kind{KindSummary, KindExplanation, KindNotes, KindQuiz, KindAnswer}
}

// ParseKind validates a kind name.
func ParseKind(value string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == value {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown history kind %q", value)
}

// Entry is one stored artifact. Payload holds the rendered artifact as JSON.
type Entry struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"kind"`
	Title     string          `json:"title"`
	Input     string          `json:"input,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// ShortID returns the first eight characters of the ID.
func (e Entry) ShortID() string {
	if len(e.ID) <= 8 {
		return e.ID
	}
	return e.ID[:8]
}

// Decode unmarshals the payload into v.
func (e Entry) Decode(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Kind, err)
	}
	return nil
}

// ListOptions filters List.
type ListOptions struct {
	Kind  Kind
	Limit int
}

// Match is a search hit.
type Match struct {
	Entry Entry   `json:"entry"`
	Score float64 `json:"score"`
}
