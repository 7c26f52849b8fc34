package present

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiDim    = "\x1b[2m"
	ansiReset  = "\x1b[0m"
)

// textWriter accumulates text output and applies colour when enabled.
type textWriter struct {
	strings.Builder
	color bool
}

func (w *textWriter) line(parts ...string) {
	w.WriteString(strings.Join(parts, ""))
	w.WriteByte('\n')
}

func (w *textWriter) linef(format string, args ...any) {
	w.line(fmt.Sprintf(format, args...))
}

func (w *textWriter) blank() {
	s := w.String()
	if s == "" || strings.HasSuffix(s, "\n\n") {
		return
	}
	w.WriteByte('\n')
}

func (w *textWriter) paint(code, s string) string {
	if !w.color || s == "" {
		return s
	}
	return code + s + ansiReset
}

func (w *textWriter) bold(s string) string {
	if !w.color || s == "" {
		return s
	}
	return text.Bold.Sprint(s)
}

func (w *textWriter) sectionHeader(title string) {
	header := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	w.line(w.paint(ansiBlue, header))
}
