package markdown

import (
	"fmt"
	"strings"
)

// Kind tags the variant held by a Block.
type Kind int

const (
	KindText Kind = iota
	KindHeading
	KindBold
	KindListItem
	KindBreak
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindBold:
		return "bold"
	case KindListItem:
		return "list_item"
	case KindBreak:
		return "break"
	default:
		return "text"
	}
}

// Block is one rendered element. Level is set only for headings (1..3).
// Line is the 1-based source line the block came from; blocks produced from
// the same line are inline with each other.
type Block struct {
	Kind  Kind   `json:"kind"`
	Level int    `json:"level,omitempty"`
	Text  string `json:"text,omitempty"`
	Line  int    `json:"line"`
}

// Heading builds a heading block.
func Heading(level int, text string) Block {
	return Block{Kind: KindHeading, Level: level, Text: text}
}

// Bold builds a bold span.
func Bold(text string) Block { return Block{Kind: KindBold, Text: text} }

// ListItem builds a list item.
func ListItem(text string) Block { return Block{Kind: KindListItem, Text: text} }

// Text builds a plain prose run.
func Text(text string) Block { return Block{Kind: KindText, Text: text} }

// Break marks a paragraph boundary.
func Break() Block { return Block{Kind: KindBreak} }

// Plain flattens blocks back to unformatted text. Inline blocks from the same
// line are concatenated, lines are joined with newlines and a Break becomes an
// empty line.
func Plain(blocks []Block) string {
	var b strings.Builder
	prevLine := 0
	for i, block := range blocks {
		if block.Kind == KindBreak {
			b.WriteString("\n")
			prevLine = 0
			continue
		}
		if i > 0 && block.Line != prevLine {
			b.WriteString("\n")
		}
		b.WriteString(block.Text)
		prevLine = block.Line
	}
	return b.String()
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText.
func (k *Kind) UnmarshalText(data []byte) error {
	for _, candidate := range []Kind{KindText, KindHeading, KindBold, KindListItem, KindBreak} {
		if candidate.String() == string(data) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown block kind %q", data)
}
