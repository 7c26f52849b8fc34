// Package session persists the bearer token issued at login.
//
// The token lives in a JSON file under the state directory, written
// atomically with mode 0600 while holding an flock on a sibling lock file, so
// concurrent CLI invocations never interleave writes. Callers load the token
// explicitly and pass it into each backend call.
//
// InspectToken decodes JWT claims without verifying the signature. The
// backend remains the authority on validity; inspection only lets the CLI
// warn about an expired login before a request is made.
package session
