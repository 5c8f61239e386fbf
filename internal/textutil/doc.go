// Package textutil holds the text helpers behind duplicate detection and
// repository file naming.
//
// Fingerprints are term-frequency vectors over lowercase alphanumeric tokens
// of at least three characters. A Corpus weights them by inverse document
// frequency so that words shared by most titles in a project count for less.
package textutil
