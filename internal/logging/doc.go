// Package logging builds the slog loggers tunesets components share.
//
// The console handler prints the set-building fields (tune id, pass,
// album matching, merge counts, override source and line) right after the
// message so a build log reads pass by pass; hints and the shortened run id
// trail the line. The JSON handler keeps every field for machine reading.
// Output goes to stderr and optionally a log file; stdout carries the sets.
package logging
