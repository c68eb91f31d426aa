// Package main hosts the tunesets CLI entrypoint and command graph.
//
// Running tunesets with no subcommand performs a full build. The config and
// cache subcommands scaffold configuration and manage the adjacency snapshot.
// Configuration resolution and logger setup live in commandContext so
// subcommands only deal with their own output.
package main
