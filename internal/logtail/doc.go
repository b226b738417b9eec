// Package logtail reads the end of the speakerctl log file.
//
// # Overview
//
// Failed control calls are only ever logged, so the log file is where an
// operator finds out what went wrong. The TUI's diagnostics view calls Tail
// to show the most recent entries, optionally only warnings and errors.
//
// # Reading
//
// Tail scans the file once and keeps the last N matching lines in a ring
// buffer, so memory use is bounded by N rather than by file size:
//
//	lines, err := logtail.Tail(cfg.LogFile, logtail.Options{
//		Lines:  200,
//		Levels: []string{"warn", "error"},
//	})
//
// A missing log file is not an error; Tail returns no lines.
//
// # Level Filtering
//
// The log file is written in logfmt. Level reads the level=... field of a
// line; lines without one never match a level filter.
package logtail
