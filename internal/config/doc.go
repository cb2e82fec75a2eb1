// Package config loads, normalizes, and validates launchmeta configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the MOBYGAMES_API_KEY environment
// fallback. The provider used for a run is an explicit configuration value
// rather than a process-wide toggle.
package config
