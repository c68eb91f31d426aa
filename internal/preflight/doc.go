// Package preflight provides readiness checks for the files, directories, and
// catalog site a build depends on.
//
// The builder calls RunAll after the run lock is held and before any input
// is parsed, so a missing override file or an unwritable output directory is
// reported up front instead of after minutes of fetching. Playlist and
// catalog checks only run when no cached snapshot will be used.
package preflight
