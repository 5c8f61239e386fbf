// Package project resolves the active project and its on-disk layout.
//
// Application-wide state lives in a state directory: the active project
// settings blob, the navigation-state blob, and a lock file serialising
// writers of both. Each project's working directory carries a metadata marker
// (project-metadata.json) whose presence identifies it as a project, plus the
// literatures/ and attributes/ collections.
package project
