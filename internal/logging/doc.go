// Package logging assembles structured slog loggers and formatting helpers used
// across Anime Buddy.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so assistant code can tag log
// lines with correlation IDs and the classified intent. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
