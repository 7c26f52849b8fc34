package present

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"study/internal/api"
	"study/internal/explain"
	"study/internal/markdown"
)

var title = cases.Title(language.Und)

// Summary prints a rendered summary.
func (p *Printer) Summary(s api.Summary) error {
	return p.emit(s, func(w *textWriter) {
		writeBlocks(w, s.Blocks, "")
	})
}

// Explanation prints explanation sections.
func (p *Printer) Explanation(e api.Explanation) error {
	return p.emit(e, func(w *textWriter) {
		for i, sec := range e.Sections {
			if i > 0 {
				w.blank()
			}
			writeSection(w, sec)
		}
	})
}

func writeSection(w *textWriter, sec explain.Section) {
	w.sectionHeader(sec.Title)
	if strings.TrimSpace(sec.Paragraph) != "" {
		writeBlocks(w, markdown.Render(sec.Paragraph), "")
	}
	writeList(w, "bullets", sec.Bullets)
	writeList(w, "examples", sec.Examples)
	if len(sec.Terms) > 0 {
		w.line(w.bold(title.String("key terms")+":"), " ", strings.Join(sec.Terms, ", "))
	}
	if len(sec.FAQs) > 0 {
		w.line(w.bold("FAQ:"))
		for _, faq := range sec.FAQs {
			w.line("  Q: ", faq.Q)
			w.line("  A: ", faq.A)
		}
	}
}

func writeList(w *textWriter, label string, items []string) {
	if len(items) == 0 {
		return
	}
	w.line(w.bold(title.String(label) + ":"))
	for _, item := range items {
		w.line("  • ", item)
	}
}

// Notes prints generated notes. Each note is rendered as markdown.
func (p *Printer) Notes(n api.Notes) error {
	return p.emit(n, func(w *textWriter) {
		if len(n.Items) == 0 {
			w.line("No notes returned")
			return
		}
		for i, item := range n.Items {
			if i > 0 {
				w.blank()
			}
			w.line(w.paint(ansiBlue, title.String("note")+" "+strconv.Itoa(i+1)))
			writeBlocks(w, markdown.Render(item), "  ")
		}
	})
}

// Quiz prints a multiple-choice quiz. Answer lines are shown as written.
func (p *Printer) Quiz(q api.Quiz) error {
	return p.emit(q, func(w *textWriter) {
		if len(q.Records) == 0 {
			w.line("No questions returned")
			return
		}
		for i, rec := range q.Records {
			if i > 0 {
				w.blank()
			}
			w.line(w.bold(rec.Question))
			for j, opt := range rec.Options {
				w.line("   ", string(rune('A'+j)), ") ", opt)
			}
			if rec.HasAnswer {
				w.line("   ", w.paint(ansiDim, rec.CorrectAnswerLine))
			}
		}
	})
}

// Answer prints a Q&A answer.
func (p *Printer) Answer(a api.Answer) error {
	return p.emit(a, func(w *textWriter) {
		writeBlocks(w, markdown.Render(a.Text), "")
	})
}
