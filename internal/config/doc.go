// Package config loads, normalizes, and validates trialgen configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// generator needs: stimulus directories, design constants (repeats, chunk
// size, seed), output layout, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical values, and clear validation errors.
package config
