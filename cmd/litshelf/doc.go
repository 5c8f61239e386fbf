// Package main hosts the litshelf CLI entrypoint and command graph.
//
// The Cobra command tree stands in for the interactive screens of a desktop
// client: it resolves the active project from the state directory, opens a
// library.Service on it, and renders results as tables, JSON or YAML.
// Directory arguments replace folder pickers and -o replaces the save
// dialog.
//
// Record semantics live in the internal packages; commands here only translate
// flags into library calls and format what comes back.
package main
