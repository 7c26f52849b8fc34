// Package main implements the study CLI, a terminal client for the
// study-assistant backend.
//
// Commands cover the account lifecycle (register, login, logout, me), the
// content generators (summarize, explain, notes make, mcq, ask) and local
// state (history, session, config). Results print as text, JSON or YAML, and
// generated artifacts are kept in a local SQLite history when enabled.
package main
