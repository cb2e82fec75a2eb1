// Package main hosts the launchmeta CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, then hands off to the
// internal packages: run walks the directory list through the interactive
// catalog funnel and the artifact pipeline, deps reports whether the image
// transcoder is installed, and config scaffolds or validates the TOML file.
//
// Keep this package thin. New behaviour belongs in internal packages first and
// is surfaced here as a command or flag.
package main
