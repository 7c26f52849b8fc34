// Package logging assembles the slog loggers used by the study CLI.
//
// Two output formats are supported: a compact key=value console format meant
// for terminals and a JSON format meant for log files. Every logger created by
// New carries an invocation_id so the lines written by one CLI run can be
// grouped, and component loggers tag lines with the subsystem that wrote them.
//
// Tests and wiring code that must not fail can use NewNop.
package logging
