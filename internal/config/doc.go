// Package config loads, normalizes, and validates litshelf configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// LITSHELF_STATE_DIR. The Config type centralizes every knob the CLI needs:
// where the active-project state lives, export defaults, list defaults, the
// host commands used to open files and copy to the clipboard, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
