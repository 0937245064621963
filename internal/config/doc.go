// Package config loads, normalizes, and validates gridcut configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// GRIDCUT_PLAY_DIR. The Config type centralizes every knob the CLI needs,
// so footage and clip directories, slicing policy, and download settings
// are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
