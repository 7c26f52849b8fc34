// Package markdown renders the loosely markdown-flavoured summaries returned by
// the backend into a flat sequence of blocks.
//
// Rendering is an ordered list of independent rules applied to each input
// line. A rule either rewrites the line and hands it to the next rule, or
// consumes it and emits blocks. Lines no rule consumes become Text blocks.
// The default order is fixed: strip ANSI, headings, bold spans, list items,
// blank-line breaks. Output has no nesting; presenters decide how blocks look.
package markdown
