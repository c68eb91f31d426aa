// Package config loads, normalizes, and validates tunesets configuration.
//
// Configuration lives in a TOML file resolved from an explicit path, then
// ~/.config/tunesets/config.toml, then ./tunesets.toml in the working
// directory. When none exists the defaults reproduce the classic layout:
// everything under ./data, the irishtune.info catalog, and the two override
// files set_overrides.txt (album "me") and foin_session.txt (album "fs").
//
// Relative file names in [paths], [cache], and [[overrides]] resolve against
// paths.data_dir. Use `tunesets config init` to write the annotated sample.
package config
