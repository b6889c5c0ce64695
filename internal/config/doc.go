// Package config loads, normalizes, and validates tidydir configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Besides paths and logging knobs the
// Config carries the category table, so an alternate extension mapping can
// be supplied without touching organizer code.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and a category table that has
// already passed validation.
package config
