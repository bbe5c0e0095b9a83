// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used throughout daybrief plus
// small helpers for building attributes, so log records stay consistent and
// greppable across packages. Diagnostic output always goes to stderr; the
// rendered brief itself is never logged.
package logging
