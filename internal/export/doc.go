// Package export flattens literature records into tidy data.
//
// With attribute columns selected, each (record, attribute, value) triple is
// one observation and becomes one row; otherwise each record is one row. The
// text renderer produces CSV or TSV; WriteSQLite produces the same
// observations as relational tables.
package export
