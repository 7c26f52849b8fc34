package present

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. An empty name selects text.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text, json or yaml)", value)
	}
}

// Options configures a Printer.
type Options struct {
	Format      Format
	Color       string
	PreviewSize int
	Now         func() time.Time
}

// Printer writes views to out.
type Printer struct {
	out         io.Writer
	format      Format
	color       bool
	previewSize int
	now         func() time.Time
}

// New builds a Printer. Color is "auto", "always" or "never".
func New(out io.Writer, opts Options) *Printer {
	format := opts.Format
	if format == "" {
		format = FormatText
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Printer{
		out:         out,
		format:      format,
		color:       format == FormatText && ShouldColorize(out, opts.Color),
		previewSize: opts.PreviewSize,
		now:         now,
	}
}

// Format returns the printer's output format.
func (p *Printer) Format() Format { return p.format }

// ShouldColorize resolves a colour mode against the writer.
func ShouldColorize(w io.Writer, mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// emit writes v as JSON or YAML, or calls text in text mode.
func (p *Printer) emit(v any, text func(w *textWriter)) error {
	switch p.format {
	case FormatJSON:
		return writeJSON(p.out, v)
	case FormatYAML:
		return writeYAML(p.out, v)
	default:
		tw := &textWriter{color: p.color}
		text(tw)
		_, err := io.WriteString(p.out, tw.String())
		return err
	}
}

// Value writes an arbitrary value. Text mode prints it as indented JSON.
func (p *Printer) Value(v any) error {
	if p.format == FormatText {
		return writeJSON(p.out, v)
	}
	return p.emit(v, nil)
}

// messageView is the structured form of a status message.
type messageView struct {
	Message string `json:"message"`
}

// Message prints a one-line confirmation.
func (p *Printer) Message(msg string) error {
	return p.emit(messageView{Message: msg}, func(w *textWriter) {
		w.line(w.paint(ansiGreen, msg))
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	var generic any
	if err := json.Unmarshal(buf.Bytes(), &generic); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
