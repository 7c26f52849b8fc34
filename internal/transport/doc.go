// Package transport issues requests to the study backend and turns whatever
// comes back into either a ParsedBody or an *ErrorInfo.
//
// # Normalization
//
// Response bodies are normalized before the status code is looked at, because
// error responses from this backend frequently carry their only diagnostic in
// a JSON "message" or "error" field. Normalize tries, in order: a JSON parse
// when the content type mentions json, a JSON parse regardless of the content
// type, the raw text, and finally Empty when the body cannot be read.
//
// # Errors
//
// Every failure is an *ErrorInfo whose Message can be shown to a user as-is.
// Classify derives the message for non-2xx responses.
//
// # Retries
//
// Send performs exactly one HTTP call. There is no retry loop; several POST
// endpoints create server-side records and a retry could duplicate them.
package transport
