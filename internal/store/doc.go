// Package store persists records as one JSON file per record.
//
// A [Repository] owns a single collection directory beneath a project's
// working directory. Files are named "<id><suffix>" where the suffix is fixed
// per [Kind]. Writes replace whole files atomically; reads treat a missing
// file as "not found" rather than an error; listings skip and log files that
// cannot be parsed so one corrupt record never hides the rest.
package store
