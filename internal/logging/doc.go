// Package logging assembles structured slog loggers and formatting helpers used
// across litshelf packages.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing. Component loggers tag every line with the emitting package,
// and the record helpers attach the kind and id of the literature record or
// attribute schema being touched so repository warnings can be traced back to
// a single file. The package also provides a no-op logger for tests and
// wiring code that cannot fail.
package logging
