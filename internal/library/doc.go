// Package library exposes the record operations of one project as plain
// request/response calls. It binds a project.Context to the literature and
// attribute-schema repositories and to the exporter; the CLI is its only
// caller in this repository.
package library
