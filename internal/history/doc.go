// Package history keeps a local SQLite log of the artifacts the CLI has
// generated (summaries, explanations, notes, quizzes, answers) so they can be
// listed, shown again and searched without another backend call.
//
// The database lives at config.HistoryPath, runs in WAL mode with a busy
// timeout, and retries writes that hit SQLITE_BUSY with exponential backoff.
// The schema is embedded and versioned through a schema_version table; a
// mismatch is reported as ErrSchemaMismatch rather than migrated.
//
// Entries are identified by UUIDs. Lookups accept any unique prefix so the
// short IDs printed by the CLI can be passed back in. The store prunes itself
// to the configured maximum after every insert.
package history
