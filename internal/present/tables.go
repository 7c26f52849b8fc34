package present

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"study/internal/api"
	"study/internal/history"
	"study/internal/textutil"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

const defaultPreviewSize = 200

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    60,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// noteListView is the structured form of the notes history.
type noteListView struct {
	Notes []api.NoteEntry `json:"notes"`
}

// NoteList prints the saved notes history with previews.
func (p *Printer) NoteList(entries []api.NoteEntry) error {
	if entries == nil {
		entries = []api.NoteEntry{}
	}
	size := p.previewSize
	if size <= 0 {
		size = defaultPreviewSize
	}
	return p.emit(noteListView{Notes: entries}, func(w *textWriter) {
		if len(entries) == 0 {
			w.line("No notes found")
			return
		}
		rows := make([][]string, 0, len(entries))
		for i, entry := range entries {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				entry.DisplayTitle(),
				entry.PDFName,
				entry.Preview(size),
			})
		}
		w.line(renderTable([]string{"#", "Title", "File", "Preview"}, rows, []columnAlignment{alignRight}))
	})
}

// historyListView is the structured form of a history listing.
type historyListView struct {
	Entries []history.Entry `json:"entries"`
}

// HistoryList prints stored artifacts newest first.
func (p *Printer) HistoryList(entries []history.Entry) error {
	if entries == nil {
		entries = []history.Entry{}
	}
	return p.emit(historyListView{Entries: entries}, func(w *textWriter) {
		if len(entries) == 0 {
			w.line("No history entries")
			return
		}
		now := p.now()
		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, []string{
				entry.ShortID(),
				title.String(string(entry.Kind)),
				textutil.Preview(textutil.OneLine(entry.Title), 40),
				humanize.RelTime(entry.CreatedAt, now, "ago", "from now"),
			})
		}
		w.line(renderTable([]string{"ID", "Kind", "Title", "Created"}, rows, nil))
	})
}

// searchView is the structured form of history search results.
type searchView struct {
	Query   string          `json:"query"`
	Matches []history.Match `json:"matches"`
}

// HistoryMatches prints ranked search results.
func (p *Printer) HistoryMatches(query string, matches []history.Match) error {
	if matches == nil {
		matches = []history.Match{}
	}
	return p.emit(searchView{Query: query, Matches: matches}, func(w *textWriter) {
		if len(matches) == 0 {
			w.linef("No history entries match %q", query)
			return
		}
		rows := make([][]string, 0, len(matches))
		for _, m := range matches {
			rows = append(rows, []string{
				m.Entry.ShortID(),
				title.String(string(m.Entry.Kind)),
				textutil.Preview(textutil.OneLine(m.Entry.Title), 40),
				fmt.Sprintf("%.0f%%", m.Score*100),
			})
		}
		w.line(renderTable([]string{"ID", "Kind", "Title", "Match"}, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))
	})
}

// HistoryEntry prints one stored artifact using the layout of its kind.
func (p *Printer) HistoryEntry(entry history.Entry) error {
	if p.format != FormatText {
		return p.emit(entry, nil)
	}
	header := fmt.Sprintf("%s · %s · %s", title.String(string(entry.Kind)), entry.Title,
		humanize.RelTime(entry.CreatedAt, p.now(), "ago", "from now"))
	tw := &textWriter{color: p.color}
	tw.line(tw.paint(ansiDim, header))
	tw.blank()
	if _, err := fmt.Fprint(p.out, tw.String()); err != nil {
		return err
	}

	switch entry.Kind {
	case history.KindSummary:
		var v api.Summary
		if err := entry.Decode(&v); err != nil {
			return err
		}
		return p.Summary(v)
	case history.KindExplanation:
		var v api.Explanation
		if err := entry.Decode(&v); err != nil {
			return err
		}
		return p.Explanation(v)
	case history.KindNotes:
		var v api.Notes
		if err := entry.Decode(&v); err != nil {
			return err
		}
		return p.Notes(v)
	case history.KindQuiz:
		var v api.Quiz
		if err := entry.Decode(&v); err != nil {
			return err
		}
		return p.Quiz(v)
	case history.KindAnswer:
		var v api.Answer
		if err := entry.Decode(&v); err != nil {
			return err
		}
		return p.Answer(v)
	default:
		return writeJSON(p.out, entry.Payload)
	}
}

// Profile prints the current account.
func (p *Printer) Profile(profile api.Profile) error {
	return p.emit(profile, func(w *textWriter) {
		writeFields(w, [][2]string{
			{"Name", profile.Name},
			{"Email", profile.Email},
			{"Mobile", profile.Mobile},
		})
	})
}

func writeFields(w *textWriter, fields [][2]string) {
	width := 0
	for _, f := range fields {
		if len(f[0]) > width {
			width = len(f[0])
		}
	}
	for _, f := range fields {
		value := f[1]
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		w.line(w.bold(fmt.Sprintf("%-*s", width+1, f[0]+":")), " ", value)
	}
}

// SessionStatus describes the stored login.
type SessionStatus struct {
	LoggedIn  bool       `json:"logged_in"`
	UserName  string     `json:"user_name,omitempty"`
	Subject   string     `json:"subject,omitempty"`
	SavedAt   *time.Time `json:"saved_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired"`
	Path      string     `json:"path"`
}

// Session prints the stored login state.
func (p *Printer) Session(s SessionStatus) error {
	return p.emit(s, func(w *textWriter) {
		if !s.LoggedIn {
			w.line(w.paint(ansiYellow, "Not logged in"))
			w.line("Session file: ", s.Path)
			return
		}
		fields := [][2]string{{"User", s.UserName}, {"Subject", s.Subject}}
		if s.SavedAt != nil {
			fields = append(fields, [2]string{"Logged in", humanize.RelTime(*s.SavedAt, p.now(), "ago", "from now")})
		}
		switch {
		case s.ExpiresAt == nil:
			fields = append(fields, [2]string{"Expires", "unknown"})
		case s.Expired:
			fields = append(fields, [2]string{"Expires", w.paint(ansiYellow, "expired "+humanize.RelTime(*s.ExpiresAt, p.now(), "ago", "from now"))})
		default:
			fields = append(fields, [2]string{"Expires", humanize.RelTime(*s.ExpiresAt, p.now(), "ago", "from now")})
		}
		fields = append(fields, [2]string{"Session file", s.Path})
		writeFields(w, fields)
	})
}

// Dashboard is the combined account overview.
type Dashboard struct {
	Profile api.Profile          `json:"profile"`
	Notes   []api.NoteEntry      `json:"notes"`
	History map[history.Kind]int `json:"history"`
}

// Dashboard prints the account overview.
func (p *Printer) Dashboard(d Dashboard) error {
	if d.Notes == nil {
		d.Notes = []api.NoteEntry{}
	}
	return p.emit(d, func(w *textWriter) {
		w.sectionHeader("Profile")
		writeFields(w, [][2]string{{"Name", d.Profile.Name}, {"Email", d.Profile.Email}, {"Mobile", d.Profile.Mobile}})
		w.blank()
		w.sectionHeader("Saved notes")
		w.linef("%s saved on the server", humanize.Comma(int64(len(d.Notes))))
		w.blank()
		w.sectionHeader("Local history")
		if len(d.History) == 0 {
			w.line("No history entries")
			return
		}
		kinds := make([]string, 0, len(d.History))
		for k := range d.History {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)
		rows := make([][]string, 0, len(kinds))
		for _, k := range kinds {
			rows = append(rows, []string{title.String(k), humanize.Comma(int64(d.History[history.Kind(k)]))})
		}
		w.line(renderTable([]string{"Kind", "Entries"}, rows, []columnAlignment{alignLeft, alignRight}))
	})
}
