// Package attribute models user-defined tag categories and their attachment
// to literature records.
//
// A [Schema] names a category and optionally lists predefined values. An
// [Application] is the per-record attachment: the schema id, the chosen
// values (a set kept in first-insertion order), and a note. Applications are
// never stored with an empty value list.
package attribute
