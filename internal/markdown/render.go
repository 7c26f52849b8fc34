package markdown

import "strings"

// Renderer applies its rules, in order, to every line of the input.
type Renderer struct {
	Rules []Rule
}

// New returns a Renderer using DefaultRules.
func New() *Renderer {
	return &Renderer{Rules: DefaultRules()}
}

// Render renders text with the default rules.
func Render(text string) []Block {
	return New().Render(text)
}

// Render converts text into blocks. Runs of blank lines collapse into a single
// Break and breaks at either end are dropped. Render never fails.
func (r *Renderer) Render(text string) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	out := make([]Block, 0, len(lines))
	for i, raw := range lines {
		for _, block := range r.renderLine(raw) {
			if block.Kind == KindBreak {
				if len(out) == 0 || out[len(out)-1].Kind == KindBreak {
					continue
				}
			} else {
				block.Line = i + 1
			}
			out = append(out, block)
		}
	}
	for len(out) > 0 && out[len(out)-1].Kind == KindBreak {
		out = out[:len(out)-1]
	}
	return out
}

func (r *Renderer) renderLine(line string) []Block {
	line = strings.TrimSpace(line)
	for _, rule := range r.Rules {
		if rule.Match == nil || rule.Transform == nil || !rule.Match(line) {
			continue
		}
		blocks, rest, done := rule.Transform(line)
		if done {
			return blocks
		}
		line = strings.TrimSpace(rest)
	}
	if line == "" {
		return []Block{Break()}
	}
	return []Block{Text(line)}
}
