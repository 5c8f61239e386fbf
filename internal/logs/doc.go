// Package logs reads the CLI log file for `litshelf logs`.
//
// Tail streams the file with bounded memory, supports a negative offset for
// "last N lines" reads and can wait for new lines in follow mode. Callers pass
// a context so polling stops when the command exits.
package logs
