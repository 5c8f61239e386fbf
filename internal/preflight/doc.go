// Package preflight provides readiness checks for the directories and host
// programs litshelf depends on.
//
// These checks run in two contexts:
//   - Project activation calls CheckDirectoryAccess on the new collection
//     directories and refuses a working directory it cannot write to.
//   - The CLI "litshelf status" command calls RunAll to display overall health.
package preflight
