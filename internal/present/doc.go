// Package present writes rendered artifacts to the terminal.
//
// A Printer emits every view in one of three formats. Text output is meant
// for people: markdown blocks are laid out with headings and bullets, quizzes
// and explanation sections get labelled layouts, and lists become rounded
// tables. JSON and YAML output encode the same view values so scripts see one
// schema regardless of format; YAML is produced from the JSON form so field
// names match.
//
// Colour is applied only in text mode, and in "auto" mode only when the
// writer is a terminal.
package present
