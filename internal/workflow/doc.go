// Package workflow processes an input list title by title: skip completed
// directories, resolve the title through the funnel, preview and confirm the
// sidecar, then hand the selected images to the artifact pipeline.
//
// A run holds an exclusive lock on the output root so two runs cannot write
// into the same tree, and tags every log line with a run id.
package workflow
