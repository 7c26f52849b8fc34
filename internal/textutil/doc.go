// Package textutil provides small text helpers shared by the renderers, the
// presenter and the history store.
//
// The primary use cases are:
//   - Stripping terminal escape sequences from backend text
//   - Truncating long bodies into fixed-size previews
//   - Sanitizing titles into file names for saved artifacts
//   - Term-frequency fingerprints for ranking history entries against a query
package textutil
