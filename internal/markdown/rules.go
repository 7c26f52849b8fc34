package markdown

import (
	"regexp"
	"strings"

	"study/internal/textutil"
)

// Rule is one step of the rendering pipeline. Transform is called only when
// Match reports true. It returns the blocks emitted for the line, the text
// handed to later rules, and whether the line is fully consumed.
type Rule struct {
	Name      string
	Match     func(line string) bool
	Transform func(line string) (blocks []Block, rest string, done bool)
}

// DefaultRules returns the standard pipeline in application order.
func DefaultRules() []Rule {
	return []Rule{
		StripANSIRule(),
		HeadingRule(),
		BoldRule(),
		ListItemRule(),
		BreakRule(),
	}
}

// StripANSIRule removes terminal escape sequences before any other rule sees
// the line.
func StripANSIRule() Rule {
	return Rule{
		Name:  "strip_ansi",
		Match: func(line string) bool { return strings.Contains(line, "\x1b") },
		Transform: func(line string) ([]Block, string, bool) {
			return nil, textutil.StripANSI(line), false
		},
	}
}

// headingPrefixes is ordered longest first so "#" never matches inside "##".
var headingPrefixes = []struct {
	prefix string
	level  int
}{
	{"###", 3},
	{"##", 2},
	{"#", 1},
}

func headingOf(line string) (int, string, bool) {
	for _, h := range headingPrefixes {
		rest, ok := strings.CutPrefix(line, h.prefix)
		if !ok {
			continue
		}
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			return 0, "", false
		}
		text := strings.TrimSpace(rest)
		if text == "" {
			return 0, "", false
		}
		return h.level, text, true
	}
	return 0, "", false
}

// HeadingRule turns "# ", "## " and "### " lines into headings. Bold markers
// in the heading text are dropped.
func HeadingRule() Rule {
	return Rule{
		Name: "heading",
		Match: func(line string) bool {
			_, _, ok := headingOf(line)
			return ok
		},
		Transform: func(line string) ([]Block, string, bool) {
			level, text, _ := headingOf(line)
			return []Block{Heading(level, unbold(text))}, "", true
		},
	}
}

var boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// unbold strips "**" markers, keeping the enclosed text.
func unbold(s string) string {
	return boldPattern.ReplaceAllString(s, "$1")
}

// BoldRule splits a line holding "**text**" spans into Bold blocks and the
// Text runs between them. List lines are left to ListItemRule.
func BoldRule() Rule {
	return Rule{
		Name: "bold",
		Match: func(line string) bool {
			return !isListItem(line) && boldPattern.MatchString(line)
		},
		Transform: func(line string) ([]Block, string, bool) {
			var blocks []Block
			last := 0
			for _, loc := range boldPattern.FindAllStringSubmatchIndex(line, -1) {
				if prose := line[last:loc[0]]; strings.TrimSpace(prose) != "" {
					blocks = append(blocks, Text(prose))
				}
				blocks = append(blocks, Bold(line[loc[2]:loc[3]]))
				last = loc[1]
			}
			if prose := line[last:]; strings.TrimSpace(prose) != "" {
				blocks = append(blocks, Text(prose))
			}
			return blocks, "", true
		},
	}
}

func isListItem(line string) bool {
	return strings.HasPrefix(line, "- ")
}

// ListItemRule turns "- " lines into list items. Bold markers inside the item
// are dropped since blocks do not nest.
func ListItemRule() Rule {
	return Rule{
		Name:  "list_item",
		Match: isListItem,
		Transform: func(line string) ([]Block, string, bool) {
			return []Block{ListItem(strings.TrimSpace(unbold(strings.TrimPrefix(line, "- "))))}, "", true
		},
	}
}

// BreakRule turns blank lines into paragraph breaks.
func BreakRule() Rule {
	return Rule{
		Name:  "break",
		Match: func(line string) bool { return strings.TrimSpace(line) == "" },
		Transform: func(string) ([]Block, string, bool) {
			return []Block{Break()}, "", true
		},
	}
}
