// Package api wraps the study backend's endpoints in typed calls.
//
// Every call goes through transport.Client and takes the bearer token as an
// explicit argument; the package never reads ambient session state.
//
// # Boundary decoding
//
// Several endpoints return the same artifact in more than one shape. Each is
// decoded at the boundary into one canonical type before anything renders it:
//
// MakeMCQ: an array of items, {mcqs: transcript}, {mcqs: items} or a bare
// transcript body all become []mcq.Record.
//
// MakeNotes: {notes: string} and {notes: []string} both become Notes.Items.
//
// Explain: {explanation: sections} or {explanation: string} become
// []explain.Section; anything else degrades to a single fallback section.
//
// ListNotes: a non-array body is treated as no notes.
//
// Bodies that match none of an endpoint's accepted shapes produce a
// *ShapeError. A success response whose body could not be read produces a
// transport.ErrorInfo with KindMalformedBody.
package api
