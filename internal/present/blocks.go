package present

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"study/internal/markdown"
)

var upper = cases.Upper(language.Und)

// writeBlocks lays out markdown blocks. Blocks sharing a source line are
// joined into one output line.
func writeBlocks(w *textWriter, blocks []markdown.Block, indent string) {
	var (
		current strings.Builder
		line    = -1
	)
	flush := func() {
		if line >= 0 {
			w.line(indent, current.String())
			current.Reset()
			line = -1
		}
	}
	for _, block := range blocks {
		switch block.Kind {
		case markdown.KindBreak:
			flush()
			w.blank()
		case markdown.KindHeading:
			flush()
			writeHeading(w, block, indent)
		case markdown.KindListItem:
			flush()
			w.line(indent, "  • ", block.Text)
		case markdown.KindBold, markdown.KindText:
			if block.Line != line {
				flush()
				line = block.Line
			}
			if block.Kind == markdown.KindBold {
				current.WriteString(w.bold(block.Text))
			} else {
				current.WriteString(block.Text)
			}
		}
	}
	flush()
}

func writeHeading(w *textWriter, block markdown.Block, indent string) {
	switch block.Level {
	case 1:
		title := upper.String(block.Text)
		w.line(indent, w.paint(ansiBlue, w.bold(title)))
		w.line(indent, w.paint(ansiBlue, strings.Repeat("=", len([]rune(title)))))
	case 2:
		w.line(indent, w.bold(block.Text))
		w.line(indent, strings.Repeat("-", len([]rune(block.Text))))
	default:
		w.line(indent, w.bold("▸ "+block.Text))
	}
}
