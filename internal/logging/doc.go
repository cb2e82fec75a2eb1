// Package logging assembles structured slog loggers and formatting helpers used
// across launchmeta.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers plus the field names shared by the
// funnel, the artifact pipeline, and the run loop. A no-op logger is provided
// for tests and wiring code that cannot fail.
package logging
